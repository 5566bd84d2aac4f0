package ad

import "errors"

var ErrNotFound = errors.New("ad not found")

const (
	// Placeholder stands in for a missing display field (company, location,
	// contract type). Free-text descriptions fall back to "" instead.
	Placeholder = "—"

	SearchLimit = 100
)

// Row is an advertisement joined with its company name. Nullable columns stay
// pointers so shaping can tell NULL from a value.
type Row struct {
	ID           int64   `json:"ad_id"`
	Title        *string `json:"title"`
	ShortDesc    *string `json:"short_desc"`
	LongDesc     *string `json:"long_desc"`
	Localisation *string `json:"localisation"`
	ContractType *string `json:"contract_type"`
	CompanyID    *int64  `json:"company"`
	CompanyName  string  `json:"company_name"`
}

type SearchFilter struct {
	Query string
	Lieu  string
}

// SearchItem is the shaped record returned by the public search.
type SearchItem struct {
	ID          int64    `json:"id"`
	Poste       *string  `json:"poste"`
	CompanyID   *int64   `json:"company_id"`
	CompanyName string   `json:"company_name"`
	Entreprise  string   `json:"entreprise"`
	Lieu        string   `json:"lieu"`
	TypeContrat string   `json:"type_contrat"`
	Courte      string   `json:"courte"`
	Longue      string   `json:"longue"`
	Tags        []string `json:"tags"`
}

// Detail is the shaped record returned for a single ad.
type Detail struct {
	ID          int64    `json:"id"`
	Poste       *string  `json:"poste"`
	Entreprise  string   `json:"entreprise"`
	Lieu        string   `json:"lieu"`
	TypeContrat string   `json:"type_contrat"`
	Courte      string   `json:"courte"`
	Longue      string   `json:"longue"`
	Tags        []string `json:"tags"`
}

func (r Row) ToSearchItem() SearchItem {
	company := display(&r.CompanyName)

	return SearchItem{
		ID:          r.ID,
		Poste:       r.Title,
		CompanyID:   r.CompanyID,
		CompanyName: company,
		Entreprise:  company,
		Lieu:        display(r.Localisation),
		TypeContrat: display(r.ContractType),
		Courte:      text(r.ShortDesc),
		Longue:      text(r.LongDesc),
		Tags:        []string{},
	}
}

func (r Row) ToDetail() Detail {
	return Detail{
		ID:          r.ID,
		Poste:       r.Title,
		Entreprise:  display(&r.CompanyName),
		Lieu:        display(r.Localisation),
		TypeContrat: display(r.ContractType),
		Courte:      text(r.ShortDesc),
		Longue:      text(r.LongDesc),
		Tags:        []string{},
	}
}

func ShapeSearch(rows []Row) []SearchItem {
	out := make([]SearchItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToSearchItem())
	}
	return out
}

func display(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
