package doctor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
)

type Doctor struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"-"`
	Name            string    `json:"name"`
	SpecializedIn   string    `json:"specialized_in"`
	YrsOfExperience int       `json:"yrs_of_experience"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	SpecializedIn   string `json:"specialized_in" validate:"required,max=100"`
	YrsOfExperience *int   `json:"yrs_of_experience" validate:"omitempty,gte=0"`
}

func (in *CreateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.SpecializedIn = strings.TrimSpace(in.SpecializedIn)

	return domain.Validate(in)
}

// Patch holds the fields of a partial update. Nil fields are left as they
// are.
type Patch struct {
	Name            *string `json:"name" validate:"omitempty,notblank,max=100"`
	SpecializedIn   *string `json:"specialized_in" validate:"omitempty,notblank,max=100"`
	YrsOfExperience *int    `json:"yrs_of_experience" validate:"omitempty,gte=0"`
}

func (p *Patch) Validate() error {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.SpecializedIn != nil {
		v := strings.TrimSpace(*p.SpecializedIn)
		p.SpecializedIn = &v
	}
	return domain.Validate(p)
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return p.Name == nil && p.SpecializedIn == nil && p.YrsOfExperience == nil
}

// Columns maps the set fields to column values.
func (p *Patch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.SpecializedIn != nil {
		cols["specialized_in"] = *p.SpecializedIn
	}
	if p.YrsOfExperience != nil {
		cols["yrs_of_experience"] = *p.YrsOfExperience
	}
	return cols
}

func (p *Patch) apply(d *Doctor) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.SpecializedIn != nil {
		d.SpecializedIn = *p.SpecializedIn
	}
	if p.YrsOfExperience != nil {
		d.YrsOfExperience = *p.YrsOfExperience
	}
}
