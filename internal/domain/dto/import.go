package dto

import (
	"sync"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
)

// ImportReport summarizes one CSV import run.
type ImportReport struct {
	RunID      string   `json:"run_id"`
	Indicators int      `json:"indicators"`
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Batches    int      `json:"batches"`
	Warnings   []string `json:"warnings,omitempty"`
}

// PolicyCatalog accumulates scraped policy references per indicator id.
// The scraper fills it from several goroutines.
type PolicyCatalog struct {
	policies   map[string][]domain.PolicyReference
	policiesMx sync.Mutex
}

func NewPolicyCatalog() *PolicyCatalog {
	return &PolicyCatalog{policies: make(map[string][]domain.PolicyReference)}
}

func (c *PolicyCatalog) Put(indicatorID string, ref domain.PolicyReference) {
	c.policiesMx.Lock()
	defer c.policiesMx.Unlock()

	c.policies[indicatorID] = append(c.policies[indicatorID], ref)
}

func (c *PolicyCatalog) Get(indicatorID string) []domain.PolicyReference {
	c.policiesMx.Lock()
	defer c.policiesMx.Unlock()

	return c.policies[indicatorID]
}

func (c *PolicyCatalog) IndicatorIDs() []string {
	c.policiesMx.Lock()
	defer c.policiesMx.Unlock()

	ids := make([]string, 0, len(c.policies))
	for id := range c.policies {
		ids = append(ids, id)
	}
	return ids
}
