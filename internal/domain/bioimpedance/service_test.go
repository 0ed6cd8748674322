package bioimpedance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items  map[int64]*Assessment
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Assessment), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, a *Assessment) error {
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Assessment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("assessment %d not found", id)
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Assessment) error {
	if _, ok := m.items[a.ID]; !ok {
		return fmt.Errorf("assessment %d not found", a.ID)
	}
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("assessment %d not found", id)
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	all, _ := m.AllByPatient(context.Background(), patientID)
	total := len(all)
	if offset >= len(all) {
		return []*Assessment{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) AllByPatient(_ context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	var out []*Assessment
	for _, a := range m.items {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssessmentDate.Before(out[j].AssessmentDate)
	})
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateAssessment(t *testing.T) {
	svc := NewService(newMockRepo())

	a := &Assessment{
		PatientID:      uuid.New(),
		Weight:         floatPtr(82.5),
		BodyFatPercent: floatPtr(31.2),
		LeanMassKg:     floatPtr(54.1),
	}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected assigned id")
	}
	if a.AssessmentDate.IsZero() {
		t.Error("expected assessment date to default to now")
	}
}

func TestCreateAssessment_RequiresPatient(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreateAssessment(context.Background(), &Assessment{Weight: floatPtr(80)})
	if err == nil {
		t.Fatal("expected error for missing patientId")
	}
}

func TestCreateAssessment_RejectsInvalidMeasurements(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	cases := []struct {
		name string
		a    *Assessment
	}{
		{"non-positive weight", &Assessment{PatientID: patientID, Weight: floatPtr(0)}},
		{"fat percent over 100", &Assessment{PatientID: patientID, BodyFatPercent: floatPtr(120)}},
		{"negative fat percent", &Assessment{PatientID: patientID, BodyFatPercent: floatPtr(-1)}},
		{"water percent over 100", &Assessment{PatientID: patientID, TotalBodyWaterPct: floatPtr(101)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateAssessment(context.Background(), tc.a); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestUpdateAssessment_PinsPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	a := &Assessment{PatientID: patientID, Weight: floatPtr(82.5)}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	upd := &Assessment{ID: a.ID, PatientID: uuid.New(), Weight: floatPtr(81.0)}
	if err := svc.UpdateAssessment(context.Background(), upd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.PatientID != patientID {
		t.Error("expected patient id pinned to the stored assessment")
	}

	got, err := svc.GetAssessment(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weight == nil || *got.Weight != 81.0 {
		t.Errorf("expected updated weight 81.0, got %v", got.Weight)
	}
}

func TestListByPatient_Paginated(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	for i := 0; i < 3; i++ {
		a := &Assessment{
			PatientID:      patientID,
			AssessmentDate: time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Weight:         floatPtr(80 - float64(i)),
		}
		if err := svc.CreateAssessment(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, total, err := svc.ListByPatient(context.Background(), patientID, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || total != 3 {
		t.Errorf("expected 2 of 3 assessments, got %d of %d", len(items), total)
	}
}
