package result

// PMID bit layout: 9-bit domain, 12-bit cluster, 10-bit item.
const (
	pmidDomainBits  = 9
	pmidClusterBits = 12
	pmidItemBits    = 10

	pmidDomainMask  = 1<<pmidDomainBits - 1
	pmidClusterMask = 1<<pmidClusterBits - 1
	pmidItemMask    = 1<<pmidItemBits - 1
)

// PMID builds a metric identifier from its domain, cluster and item parts.
// Out of range parts are masked.
func PMID(domain, cluster, item uint32) uint32 {
	return (domain&pmidDomainMask)<<(pmidClusterBits+pmidItemBits) |
		(cluster&pmidClusterMask)<<pmidItemBits |
		item&pmidItemMask
}

// PMIDDomain returns the domain part of pmid.
func PMIDDomain(pmid uint32) uint32 {
	return (pmid >> (pmidClusterBits + pmidItemBits)) & pmidDomainMask
}

// PMIDCluster returns the cluster part of pmid.
func PMIDCluster(pmid uint32) uint32 {
	return (pmid >> pmidItemBits) & pmidClusterMask
}

// PMIDItem returns the item part of pmid.
func PMIDItem(pmid uint32) uint32 {
	return pmid & pmidItemMask
}
