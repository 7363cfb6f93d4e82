package skemadiff

import "sort"

// TypeChange annotates an incompatible type change at a shared address with
// human-readable renderings of the old and new declarations.
type TypeChange struct {
	Address string `json:"address"`
	Old     string `json:"old"`
	New     string `json:"new"`
}

// Breaking groups the changes that break existing consumers.
type Breaking struct {
	RemovedRequired        []string     `json:"removedRequired"`
	RequiredBecameOptional []string     `json:"requiredBecameOptional"`
	TypeChanged            []TypeChange `json:"typeChanged"`
}

// NonBreaking groups informational changes that no consumer can be broken by.
type NonBreaking struct {
	Added           []string `json:"added"`
	RemovedOptional []string `json:"removedOptional"`
}

// Report is the authoritative breaking-change verdict for a schema pair.
// BreakingCount > 0 means the change must be treated as breaking.
type Report struct {
	Breaking      Breaking    `json:"breaking"`
	NonBreaking   NonBreaking `json:"nonBreaking"`
	BreakingCount int         `json:"breakingCount"`
}

// Summarize compares two field indexes address by address and classifies
// every discrepancy. The comparison is a set comparison over addresses, so
// traversal order never affects the result; output lists are sorted by
// address for deterministic reports.
func Summarize(base, next FieldIndex) Report {
	var r Report
	r.Breaking.RemovedRequired = []string{}
	r.Breaking.RequiredBecameOptional = []string{}
	r.Breaking.TypeChanged = []TypeChange{}
	r.NonBreaking.Added = []string{}
	r.NonBreaking.RemovedOptional = []string{}

	for _, addr := range sortedAddresses(base) {
		bf := base[addr]
		nf, ok := next[addr]
		if !ok {
			if bf.Required {
				r.Breaking.RemovedRequired = append(r.Breaking.RemovedRequired, addr)
			} else {
				r.NonBreaking.RemovedOptional = append(r.NonBreaking.RemovedOptional, addr)
			}
			continue
		}
		// Requiredness loss and type incompatibility are reported
		// independently; one does not mask the other.
		if bf.Required && !nf.Required {
			r.Breaking.RequiredBecameOptional = append(r.Breaking.RequiredBecameOptional, addr)
		}
		if !Compatible(bf.Types, nf.Types) {
			r.Breaking.TypeChanged = append(r.Breaking.TypeChanged, TypeChange{
				Address: addr,
				Old:     renderTypes(bf.Types),
				New:     renderTypes(nf.Types),
			})
		}
	}

	for _, addr := range sortedAddresses(next) {
		if _, ok := base[addr]; !ok {
			r.NonBreaking.Added = append(r.NonBreaking.Added, addr)
		}
	}

	r.BreakingCount = len(r.Breaking.RemovedRequired) +
		len(r.Breaking.RequiredBecameOptional) +
		len(r.Breaking.TypeChanged)
	return r
}

// Diff is the end-to-end convenience over raw schemas:
// Normalize -> Index -> Summarize.
func Diff(baseSchema, nextSchema any) Report {
	return Summarize(Index(Normalize(baseSchema)), Index(Normalize(nextSchema)))
}

func sortedAddresses(idx FieldIndex) []string {
	addrs := make([]string, 0, len(idx))
	for a := range idx {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	return addrs
}
