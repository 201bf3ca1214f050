package repository

import (
	"fmt"
	"strings"

	"offboard-checklist/internal/models"
)

// Assignment is one column = value pair of a partial update. Column always
// comes from the fixed set below, never from request input.
type Assignment struct {
	Column string
	Value  any
}

// TicketPatch lists the ticket columns a PATCH may touch. Status and
// CompletedAt are written as given, without checking the checklist.
type TicketPatch struct {
	EmployeeName   models.Optional[string]           `json:"employee_name"`
	EmployeeID     models.Optional[string]           `json:"employee_id"`
	Email          models.Optional[string]           `json:"email"`
	Position       models.Optional[string]           `json:"position"`
	Manager        models.Optional[string]           `json:"manager"`
	LastWorkingDay models.Optional[models.Date]      `json:"last_working_day"`
	Status         models.Optional[models.Status]    `json:"status"`
	CompletedAt    models.Optional[models.Timestamp] `json:"completed_at"`
}

func (p TicketPatch) Empty() bool { return len(p.Assignments()) == 0 }

func (p TicketPatch) Validate() error {
	required := []struct {
		name string
		v    models.Optional[string]
	}{
		{"employee_name", p.EmployeeName},
		{"employee_id", p.EmployeeID},
		{"email", p.Email},
	}
	for _, f := range required {
		if f.v.Set && (f.v.Value == nil || strings.TrimSpace(*f.v.Value) == "") {
			return fmt.Errorf("%s cannot be empty", f.name)
		}
	}
	return validateStatus(p.Status)
}

func (p TicketPatch) Assignments() []Assignment {
	var out []Assignment
	out = appendString(out, "employee_name", p.EmployeeName)
	out = appendString(out, "employee_id", p.EmployeeID)
	out = appendString(out, "email", p.Email)
	out = appendString(out, "position", p.Position)
	out = appendString(out, "manager", p.Manager)
	if p.LastWorkingDay.Set {
		out = append(out, Assignment{"last_working_day", p.LastWorkingDay.Value.TimePtr()})
	}
	if p.Status.Set {
		out = append(out, Assignment{"status", statusValue(p.Status.Value)})
	}
	if p.CompletedAt.Set {
		out = append(out, Assignment{"completed_at", p.CompletedAt.Value.TimePtr()})
	}
	return out
}

// Apply writes the set fields onto t.
func (p TicketPatch) Apply(t *models.Ticket) {
	if p.EmployeeName.Set {
		t.EmployeeName = deref(p.EmployeeName.Value)
	}
	if p.EmployeeID.Set {
		t.EmployeeID = deref(p.EmployeeID.Value)
	}
	if p.Email.Set {
		t.Email = deref(p.Email.Value)
	}
	if p.Position.Set {
		t.Position = p.Position.Value
	}
	if p.Manager.Set {
		t.Manager = p.Manager.Value
	}
	if p.LastWorkingDay.Set {
		t.LastWorkingDay = p.LastWorkingDay.Value
	}
	if p.Status.Set {
		t.Status = deref(p.Status.Value)
	}
	if p.CompletedAt.Set {
		t.CompletedAt = p.CompletedAt.Value.TimePtr()
	}
}

// ItemPatch is the shared update for single and bulk checklist edits.
type ItemPatch struct {
	Status       models.Optional[models.Status] `json:"status"`
	CompletedAt  models.Optional[models.Date]   `json:"completed_at"`
	EvidenceNote models.Optional[string]        `json:"evidence_note"`
}

func (p ItemPatch) Empty() bool { return len(p.Assignments()) == 0 }

func (p ItemPatch) Validate() error { return validateStatus(p.Status) }

func (p ItemPatch) Assignments() []Assignment {
	var out []Assignment
	if p.Status.Set {
		out = append(out, Assignment{"status", statusValue(p.Status.Value)})
	}
	if p.CompletedAt.Set {
		out = append(out, Assignment{"completed_at", p.CompletedAt.Value.TimePtr()})
	}
	out = appendString(out, "evidence_note", p.EvidenceNote)
	return out
}

func (p ItemPatch) Apply(it *models.ChecklistItem) {
	if p.Status.Set {
		it.Status = deref(p.Status.Value)
	}
	if p.CompletedAt.Set {
		it.CompletedAt = p.CompletedAt.Value
	}
	if p.EvidenceNote.Set {
		it.EvidenceNote = p.EvidenceNote.Value
	}
}

func validateStatus(s models.Optional[models.Status]) error {
	if !s.Set {
		return nil
	}
	if s.Value == nil {
		return fmt.Errorf("status cannot be null")
	}
	if !s.Value.Valid() {
		return fmt.Errorf("invalid status %q", *s.Value)
	}
	return nil
}

func appendString(out []Assignment, col string, o models.Optional[string]) []Assignment {
	if !o.Set {
		return out
	}
	if o.Value == nil {
		return append(out, Assignment{col, nil})
	}
	return append(out, Assignment{col, *o.Value})
}

func statusValue(s *models.Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
