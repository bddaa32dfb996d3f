package inventory

import (
	"math/rand"
	"testing"

	"cert-inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		input []models.CertificateRecord
		want  []models.CertificateRecord
	}{
		{
			name:  "empty",
			input: nil,
			want:  []models.CertificateRecord{},
		},
		{
			name: "latest expiration wins",
			input: []models.CertificateRecord{
				record("web", "Corp", days(10)),
				record("web", "Corp", days(50)),
			},
			want: []models.CertificateRecord{
				record("web", "Corp", days(50)),
			},
		},
		{
			name: "latest expiration wins regardless of order",
			input: []models.CertificateRecord{
				record("web", "Corp", days(50)),
				record("web", "Corp", days(10)),
			},
			want: []models.CertificateRecord{
				record("web", "Corp", days(50)),
			},
		},
		{
			name: "same subject different issuer kept apart",
			input: []models.CertificateRecord{
				record("web", "Corp A", days(20)),
				record("web", "Corp B", days(10)),
			},
			want: []models.CertificateRecord{
				record("web", "Corp B", days(10)),
				record("web", "Corp A", days(20)),
			},
		},
		{
			name: "sorted ascending with expired first",
			input: []models.CertificateRecord{
				record("c", "Corp", days(300)),
				record("a", "Corp", days(-4)),
				record("b", "Corp", days(90)),
			},
			want: []models.CertificateRecord{
				record("a", "Corp", days(-4)),
				record("b", "Corp", days(90)),
				record("c", "Corp", days(300)),
			},
		},
		{
			name: "equal expirations keep first seen order",
			input: []models.CertificateRecord{
				record("z", "Corp", days(7)),
				record("y", "Corp", days(7)),
				record("x", "Corp", days(7)),
			},
			want: []models.CertificateRecord{
				record("z", "Corp", days(7)),
				record("y", "Corp", days(7)),
				record("x", "Corp", days(7)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.input))
		})
	}
}

func TestReduce_TieOnSameKeyKeepsFirstSeen(t *testing.T) {
	first := record("web", "Corp", days(10))
	first.Store = "MY"
	second := record("web", "Corp", days(10))
	second.Store = "Root"

	out := Reduce([]models.CertificateRecord{first, second})

	require.Len(t, out, 1)
	assert.Equal(t, "MY", out[0].Store)
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	input := []models.CertificateRecord{
		record("b", "Corp", days(9)),
		record("a", "Corp", days(1)),
		record("b", "Corp", days(20)),
	}
	snapshot := append([]models.CertificateRecord(nil), input...)

	Reduce(input)

	assert.Equal(t, snapshot, input)
}

func TestReduce_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	subjects := []string{"a", "b", "c", "d"}
	issuers := []string{"Corp", "Other"}

	for run := 0; run < 50; run++ {
		input := make([]models.CertificateRecord, rng.Intn(40))
		for i := range input {
			input[i] = record(subjects[rng.Intn(len(subjects))], issuers[rng.Intn(len(issuers))], days(rng.Intn(400)-200))
		}

		out := Reduce(input)

		seen := make(map[models.Key]bool)
		for i, rec := range out {
			assert.False(t, seen[rec.Key()], "duplicate key %v", rec.Key())
			seen[rec.Key()] = true

			if i > 0 {
				assert.False(t, rec.NotAfter.Before(out[i-1].NotAfter), "output not sorted at %d", i)
			}
		}

		for _, rec := range input {
			require.True(t, seen[rec.Key()])
		}
	}
}
