package modflow

// UnitAllocator hands out unit numbers for external data files. Values
// are strictly increasing and never reused for the owning model's
// lifetime, even when the corresponding file is later removed: reusing a
// handle that older package data may still reference would silently
// rebind it. The sequence starts above 1000, the ceiling the name-file
// format reserves for built-in units.
type UnitAllocator struct {
	next int
}

// externalUnitStart is the last reserved unit number; the first allocated
// external unit is externalUnitStart+1.
const externalUnitStart = 1000

func newUnitAllocator() *UnitAllocator {
	return &UnitAllocator{next: externalUnitStart}
}

// Allocate returns the next external unit number.
func (a *UnitAllocator) Allocate() int {
	a.next++
	return a.next
}
