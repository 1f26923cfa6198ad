package systems

import (
	"testing"

	"github.com/pthm-cable/swamp/components"
)

func TestMealSize(t *testing.T) {
	tr := testTraits()
	tests := []struct {
		age, want int
	}{
		{0, 0}, {9, 0}, {10, 1}, {19, 1}, {55, 5}, {200, 20}, {999, 20},
	}
	for _, tt := range tests {
		if got := MealSize(tt.age, &tr); got != tt.want {
			t.Errorf("MealSize(%d) = %d, want %d", tt.age, got, tt.want)
		}
	}
}

func TestAgeDiesPastMaxAge(t *testing.T) {
	tr := testTraits()
	tr.MaxAge = 5
	v := components.Vitals{Age: 4, Health: 3}

	if _, fate := Age(&v, &tr); fate != Living {
		t.Fatalf("age 5 with MaxAge 5: fate = %v, want living", fate)
	}
	if _, fate := Age(&v, &tr); fate != DiedOfAge {
		t.Fatalf("age 6 with MaxAge 5: fate = %v, want old_age", fate)
	}
}

func TestFeedHealthAndStarvation(t *testing.T) {
	tr := testTraits()
	v := components.Vitals{Health: 3}

	if Feed(&v, &tr, 4) != Living || v.Health != 4 || v.DaysStarved != 0 {
		t.Fatalf("after meal: %+v", v)
	}
	Feed(&v, &tr, 4)
	Feed(&v, &tr, 4)
	if v.Health != 5 {
		t.Errorf("health should cap at 5, got %d", v.Health)
	}

	for day := 1; day <= 10; day++ {
		if fate := Feed(&v, &tr, 0); fate != Living {
			t.Fatalf("starved day %d: fate = %v, want living", day, fate)
		}
	}
	if v.Health != 1 {
		t.Errorf("health should floor at 1, got %d", v.Health)
	}
	if fate := Feed(&v, &tr, 0); fate != Starved {
		t.Fatalf("11th starved day: fate = %v, want starved", fate)
	}
}

func TestFeedResetsStreak(t *testing.T) {
	tr := testTraits()
	v := components.Vitals{Health: 3}
	for i := 0; i < 10; i++ {
		Feed(&v, &tr, 0)
	}
	Feed(&v, &tr, 1)
	if v.DaysStarved != 0 || v.Health != 2 {
		t.Errorf("after meal: DaysStarved=%d Health=%d, want 0 and 2", v.DaysStarved, v.Health)
	}
}

func TestCheckEaten(t *testing.T) {
	v := components.Vitals{}
	if CheckEaten(&v) != Living {
		t.Error("unflagged snail should live")
	}
	v.Eaten = true
	if CheckEaten(&v) != Eaten {
		t.Error("flagged snail should be eaten")
	}
}

func TestFateString(t *testing.T) {
	for f, want := range map[Fate]string{Living: "living", DiedOfAge: "old_age", Starved: "starved", Eaten: "eaten", Fate(99): "unknown"} {
		if f.String() != want {
			t.Errorf("Fate(%d).String() = %q, want %q", uint8(f), f.String(), want)
		}
	}
}
