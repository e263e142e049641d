package planner

import (
	"errors"
	"testing"

	"agro-mission-service/internal/domain"
)

func validInput() FieldInput {
	return FieldInput{
		Field: domain.Polygon{
			{X: 30.000, Y: 50.000},
			{X: 30.003, Y: 50.000},
			{X: 30.003, Y: 50.002},
			{X: 30.000, Y: 50.002},
		},
		Runway: domain.LineString{
			{X: 29.995, Y: 49.998},
			{X: 29.997, Y: 49.998},
		},
	}
}

func TestPreprocessValid(t *testing.T) {
	log := &BuildLog{}
	ws, err := Preprocess(validInput(), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ws.Field.Area() <= 0 {
		t.Fatalf("projected field area = %v, want > 0", ws.Field.Area())
	}
	if ws.Runway.Length() <= 0 {
		t.Fatalf("projected runway length = %v, want > 0", ws.Runway.Length())
	}
	if len(log.Lines()) == 0 {
		t.Fatal("expected a validation log line")
	}
}

func TestPreprocessRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*FieldInput)
	}{
		{"too few field vertices", func(in *FieldInput) { in.Field = in.Field[:2] }},
		{"self-intersecting field", func(in *FieldInput) {
			in.Field = domain.Polygon{
				{X: 30.000, Y: 50.000},
				{X: 30.003, Y: 50.002},
				{X: 30.003, Y: 50.000},
				{X: 30.000, Y: 50.002},
			}
		}},
		{"degenerate field", func(in *FieldInput) {
			in.Field = domain.Polygon{
				{X: 30.000, Y: 50.000},
				{X: 30.000, Y: 50.000},
				{X: 30.000, Y: 50.000},
			}
		}},
		{"short runway", func(in *FieldInput) { in.Runway = in.Runway[:1] }},
		{"zero-length runway", func(in *FieldInput) {
			in.Runway = domain.LineString{{X: 29.995, Y: 49.998}, {X: 29.995, Y: 49.998}}
		}},
		{"degenerate nfz", func(in *FieldInput) {
			in.NFZ = []domain.Polygon{{
				{X: 30.001, Y: 50.001},
				{X: 30.001, Y: 50.001},
				{X: 30.001, Y: 50.001},
			}}
		}},
		{"self-intersecting nfz", func(in *FieldInput) {
			in.NFZ = []domain.Polygon{{
				{X: 30.0010, Y: 50.0010},
				{X: 30.0020, Y: 50.0015},
				{X: 30.0020, Y: 50.0010},
				{X: 30.0010, Y: 50.0015},
			}}
		}},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)

		_, err := Preprocess(in, &BuildLog{})
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: error = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}
