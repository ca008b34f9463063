package domain

// Snapshot bundles the read-only inputs one simulation runs against. The
// engine takes working copies; a snapshot is never mutated by a run.
type Snapshot struct {
	Assets    []Asset                `json:"assets"`
	Members   []FamilyMember         `json:"members"`
	Incomes   []IncomeRecord         `json:"incomes,omitempty"`
	Goals     []Goal                 `json:"goals,omitempty"`
	Templates []ChildExpenseTemplate `json:"templates,omitempty"`
}

// AssetByID returns the asset with the given id, or nil.
func (s *Snapshot) AssetByID(id string) *Asset {
	for i := range s.Assets {
		if s.Assets[i].ID == id {
			return &s.Assets[i]
		}
	}
	return nil
}

// TemplateByID returns the expense template with the given id, or nil.
func (s *Snapshot) TemplateByID(id string) *ChildExpenseTemplate {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return &s.Templates[i]
		}
	}
	return nil
}

// SelfMember returns the member with the "self" relationship, or nil.
func (s *Snapshot) SelfMember() *FamilyMember {
	for i := range s.Members {
		if s.Members[i].Relationship == RelationSelf {
			return &s.Members[i]
		}
	}
	return nil
}
