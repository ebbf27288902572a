package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
)

type Patient struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Disease   *string   `json:"disease"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is the create and update body. Age is a pointer so a missing value
// can be told apart from zero.
type Input struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Age     *int    `json:"age" validate:"required,gte=0"`
	Disease *string `json:"disease" validate:"omitempty,max=255"`
}

func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Disease != nil {
		d := strings.TrimSpace(*in.Disease)
		if d == "" {
			in.Disease = nil
		} else {
			in.Disease = &d
		}
	}

	return domain.Validate(in)
}

func (in *Input) apply(p *Patient) {
	p.Name = in.Name
	p.Age = *in.Age
	p.Disease = in.Disease
}
