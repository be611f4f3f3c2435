package wizard

import (
	"encoding/json"
	"fmt"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

func (c *Controller) AddMember() (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		_, err := c.editor.Add(f)
		return err
	})
}

func (c *Controller) RemoveMember(i int) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.Remove(f, i)
	})
}

func (c *Controller) EditMember(i int) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.Edit(f, i)
	})
}

func (c *Controller) CloseMember() (Snapshot, error) {
	return c.mutate(func(*models.FormAggregate) error {
		c.editor.Close()
		return nil
	})
}

// UpdateMember menggabungkan objek JSON parsial ke entri i. Nama entri 0
// selalu mengikuti nama kepala keluarga.
func (c *Controller) UpdateMember(i int, raw []byte) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		if i < 0 || i >= len(f.ProfessionalFamilyMembers) {
			return c.editor.Update(f, i, nil)
		}
		entry := f.Clone().ProfessionalFamilyMembers[i]
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		return c.editor.Update(f, i, func(m *models.ProfessionalFamilyMember) {
			*m = entry
		})
	})
}

func (c *Controller) AddSkill(i int, value string) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.AddSkill(f, i, value)
	})
}

func (c *Controller) RemoveSkill(i int, value string) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.RemoveSkill(f, i, value)
	})
}

func (c *Controller) AddContribution(i int, value string) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.AddContribution(f, i, value)
	})
}

func (c *Controller) RemoveContribution(i int, value string) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		return c.editor.RemoveContribution(f, i, value)
	})
}
