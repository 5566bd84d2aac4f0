package ad

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func ptr[T any](v T) *T { return &v }

func TestToSearchItem_PlaceholderAsymmetry(t *testing.T) {
	c := qt.New(t)

	row := Row{ID: 7, Title: ptr("Backend dev")}
	got := row.ToSearchItem()

	c.Assert(got.ID, qt.Equals, int64(7))
	c.Assert(*got.Poste, qt.Equals, "Backend dev")
	c.Assert(got.CompanyID, qt.IsNil)
	c.Assert(got.CompanyName, qt.Equals, Placeholder)
	c.Assert(got.Entreprise, qt.Equals, Placeholder)
	c.Assert(got.Lieu, qt.Equals, Placeholder)
	c.Assert(got.TypeContrat, qt.Equals, Placeholder)
	c.Assert(got.Courte, qt.Equals, "")
	c.Assert(got.Longue, qt.Equals, "")
	c.Assert(got.Tags, qt.DeepEquals, []string{})
}

func TestToSearchItem_EmptyStringsAreMissing(t *testing.T) {
	c := qt.New(t)

	row := Row{ID: 1, Localisation: ptr(""), ContractType: ptr(""), ShortDesc: ptr("")}
	got := row.ToSearchItem()

	c.Assert(got.Lieu, qt.Equals, Placeholder)
	c.Assert(got.TypeContrat, qt.Equals, Placeholder)
	c.Assert(got.Courte, qt.Equals, "")
}

func TestToDetail_KeepsValues(t *testing.T) {
	c := qt.New(t)

	row := Row{
		ID:           3,
		Title:        ptr("SRE"),
		ShortDesc:    ptr("short"),
		LongDesc:     ptr("long"),
		Localisation: ptr("Paris"),
		ContractType: ptr("CDI"),
		CompanyID:    ptr(int64(2)),
		CompanyName:  "Acme",
	}
	got := row.ToDetail()

	c.Assert(got, qt.DeepEquals, Detail{
		ID:          3,
		Poste:       ptr("SRE"),
		Entreprise:  "Acme",
		Lieu:        "Paris",
		TypeContrat: "CDI",
		Courte:      "short",
		Longue:      "long",
		Tags:        []string{},
	})
}

func TestDetail_JSONOmitsCompanyID(t *testing.T) {
	c := qt.New(t)

	b, err := json.Marshal(Row{ID: 1}.ToDetail())
	c.Assert(err, qt.IsNil)

	var m map[string]any
	c.Assert(json.Unmarshal(b, &m), qt.IsNil)

	_, hasCompanyID := m["company_id"]
	c.Assert(hasCompanyID, qt.IsFalse)
	c.Assert(m["poste"], qt.IsNil)
	c.Assert(m["tags"], qt.DeepEquals, []any{})
}

func TestShapeSearch_EmptyIsNotNull(t *testing.T) {
	c := qt.New(t)

	b, err := json.Marshal(ShapeSearch(nil))
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "[]")
}
