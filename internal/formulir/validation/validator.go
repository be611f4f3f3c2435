// Package validation berisi validator per langkah formulir sensus.
//
// Validate adalah fungsi murni: aturan setiap langkah dievaluasi sesuai urutan
// deklarasi dan berhenti pada pelanggaran pertama. Tidak ada I/O.
package validation

import (
	"fmt"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

// StepCount adalah jumlah langkah wizard.
const StepCount = 7

// Violation menunjuk field pertama yang melanggar aturan beserta pesannya.
type Violation struct {
	Step    int    `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v *Violation) Error() string {
	return fmt.Sprintf("langkah %d: %s: %s", v.Step, v.Field, v.Message)
}

var steps = map[int][]rule{
	1: stepIdentity,
	2: stepHousehold,
	3: stepProfessional,
	4: stepEducation,
	5: stepEconomics,
	6: stepHealth,
	7: stepConsent,
}

// Validate memeriksa satu langkah. Mengembalikan nil bila langkah valid.
func Validate(step int, f *models.FormAggregate) *Violation {
	rules, ok := steps[step]
	if !ok {
		return &Violation{Step: step, Field: "step", Message: fmt.Sprintf("Langkah %d tidak dikenal", step)}
	}
	if f == nil {
		return &Violation{Step: step, Field: "form", Message: "Formulir kosong"}
	}
	if v := first(f, rules); v != nil {
		v.Step = step
		return v
	}
	return nil
}

// ValidateAll memeriksa langkah 1 sampai 7 berurutan.
func ValidateAll(f *models.FormAggregate) *Violation {
	for step := 1; step <= StepCount; step++ {
		if v := Validate(step, f); v != nil {
			return v
		}
	}
	return nil
}
