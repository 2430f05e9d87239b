package domain

import "fmt"

// NeutralColor is the color tag used for department ids missing from the catalog.
const NeutralColor = "gray"

// Department is one entry of the fixed department catalog events are filed under.
type Department struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Catalog is an immutable set of departments. The zero value is an empty catalog.
type Catalog struct {
	ordered []Department
	byID    map[string]Department
}

// NewCatalog builds a catalog, keeping the given order. Ids must be non-empty and unique.
func NewCatalog(departments []Department) (Catalog, error) {
	const op = "domain.NewCatalog"

	c := Catalog{
		ordered: make([]Department, 0, len(departments)),
		byID:    make(map[string]Department, len(departments)),
	}
	for i, d := range departments {
		if d.ID == "" {
			return Catalog{}, invalidInput(op, fmt.Sprintf("department %d has an empty id", i))
		}
		if _, dup := c.byID[d.ID]; dup {
			return Catalog{}, invalidInput(op, fmt.Sprintf("duplicate department id %q", d.ID))
		}
		c.ordered = append(c.ordered, d)
		c.byID[d.ID] = d
	}
	return c, nil
}

// DefaultCatalog returns the college's departments.
func DefaultCatalog() Catalog {
	c, err := NewCatalog([]Department{
		{ID: "CCS", Name: "College of Computer Studies", Color: "blue"},
		{ID: "CHTM", Name: "College of Hospitality and Tourism Management", Color: "red"},
		{ID: "CBA", Name: "College of Business and Accountancy", Color: "yellow"},
		{ID: "CEAS", Name: "College of Education, Arts, and Sciences", Color: "green"},
		{ID: "CAHS", Name: "College of Allied Health Studies", Color: "purple"},
		{ID: "General", Name: "General / University Wide", Color: "gray"},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) Lookup(id string) (Department, bool) {
	d, ok := c.byID[id]
	return d, ok
}

func (c Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Name returns the display name for id, or id itself when it is not in the catalog.
func (c Catalog) Name(id string) string {
	if d, ok := c.byID[id]; ok {
		return d.Name
	}
	return id
}

// Color returns the color tag for id, or NeutralColor when it is not in the catalog.
func (c Catalog) Color(id string) string {
	if d, ok := c.byID[id]; ok {
		return d.Color
	}
	return NeutralColor
}

// Resolve returns the catalog entry for id, or a fallback entry built from id.
func (c Catalog) Resolve(id string) (Department, bool) {
	if d, ok := c.byID[id]; ok {
		return d, true
	}
	return Department{ID: id, Name: id, Color: NeutralColor}, false
}

func (c Catalog) IDs() []string {
	ids := make([]string, len(c.ordered))
	for i, d := range c.ordered {
		ids[i] = d.ID
	}
	return ids
}

// All returns a copy of the catalog entries in order.
func (c Catalog) All() []Department {
	out := make([]Department, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c Catalog) Len() int { return len(c.ordered) }
