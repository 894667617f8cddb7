package molasses

import "testing"

func flatGT(rows, cols int) GeoTransform {
	return GeoTransform{OriginX: 0, PixelW: 1, NCols: float64(cols), OriginY: 0, NRows: float64(rows), PixelH: 1}
}

func TestGeoTransformRoundTrip(t *testing.T) {
	gt := flatGT(5, 5)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			e, n := gt.EastingNorthing(row, col)
			gotRow, gotCol := gt.RowCol(e, n)
			if gotRow != row || gotCol != col {
				t.Errorf("RowCol(EastingNorthing(%d,%d)) = (%d,%d), want (%d,%d)", row, col, gotRow, gotCol, row, col)
			}
		}
	}
}

func TestGeoTransformInBounds(t *testing.T) {
	gt := flatGT(3, 3)
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true}, {2, 2, true}, {-1, 0, false}, {0, -1, false}, {3, 0, false}, {0, 3, false},
	}
	for _, c := range cases {
		if got := gt.InBounds(c.row, c.col); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestGeoTransformPixelArea(t *testing.T) {
	gt := GeoTransform{PixelW: 2, PixelH: 3}
	if got := gt.PixelArea(); got != 6 {
		t.Errorf("PixelArea() = %v, want 6", got)
	}
}
