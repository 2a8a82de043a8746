package matrix

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateClosure(t *testing.T) {
	m := Identity
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, m.Quarters())
		m = Rotate90.Mul(m)
	}
	assert.Equal(t, Identity, m)
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   image.Point
		want image.Point
	}{
		{"identity", Identity, image.Pt(3, 4), image.Pt(3, 4)},
		{"quarter turn", Rotate90, image.Pt(3, 4), image.Pt(-4, 3)},
		{"half turn", Rotate90.Mul(Rotate90), image.Pt(3, 4), image.Pt(-3, -4)},
		{"three quarters", Rotate90.Mul(Rotate90).Mul(Rotate90), image.Pt(3, 4), image.Pt(4, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Map(tt.in))
		})
	}
}

func TestMapRectIsCanonical(t *testing.T) {
	r := image.Rect(0, 0, 100, 200)

	got := Rotate90.MapRect(r)

	assert.Equal(t, image.Rect(-200, 0, 0, 100), got)
	assert.Equal(t, 200, got.Dx())
	assert.Equal(t, 100, got.Dy())
}

func TestInverse(t *testing.T) {
	m := Identity
	for i := 0; i < 4; i++ {
		inv := m.Inverse()
		assert.Equal(t, Identity, m.Mul(inv), "quarter %d", i)
		assert.Equal(t, Identity, inv.Mul(m), "quarter %d", i)

		p := image.Pt(7, -2)
		assert.Equal(t, p, inv.Map(m.Map(p)))

		m = Rotate90.Mul(m)
	}
}

func TestInverseOfSingular(t *testing.T) {
	assert.Equal(t, Identity, Matrix{}.Inverse())
	assert.Equal(t, -1, Matrix{}.Quarters())
}

func TestDet(t *testing.T) {
	assert.Equal(t, 1, Identity.Det())
	assert.Equal(t, 1, Rotate90.Det())
	assert.Equal(t, -1, Matrix{A: 1, D: -1}.Det())
}
