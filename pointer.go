package skemadiff

import "strings"

// RootAddress is the structural address of the schema root. The root is the
// single separator character alone.
const RootAddress = "/"

// ItemsSegment is the fixed address segment shared by all elements of an
// array. Array schemas are positionally uniform, so one address stands in for
// every element.
const ItemsSegment = "items"

// escapeSegment escapes '~' -> '~0' then '/' -> '~1' per RFC6901 so literal
// '~' and '/' in a property name cannot be confused with path separators.
func escapeSegment(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// childAddress appends an escaped property-name segment to a parent address.
func childAddress(parent, name string) string {
	if parent == RootAddress {
		return RootAddress + escapeSegment(name)
	}
	return parent + "/" + escapeSegment(name)
}

// itemsAddress appends the shared array-element segment to a parent address.
func itemsAddress(parent string) string {
	if parent == RootAddress {
		return RootAddress + ItemsSegment
	}
	return parent + "/" + ItemsSegment
}
