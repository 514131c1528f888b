package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name    string
		current string
		goal    string
		want    int
	}{
		{"zero", "0", "100", 0},
		{"partial", "80", "100", 80},
		{"rounds down", "1", "3", 33},
		{"rounds up", "2", "3", 67},
		{"exact goal", "100", "100", 100},
		{"overshoot capped", "110", "100", 100},
		{"huge overshoot capped", "7", "3", 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Campaign{CurrentAmount: dec(tc.current), GoalAmount: dec(tc.goal)}
			require.Equal(t, tc.want, c.ProgressPercentage())
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"36h rounds up to 2", now.Add(36 * time.Hour), 2},
		{"one minute counts as a day", now.Add(time.Minute), 1},
		{"exactly now", now, 0},
		{"already ended", now.Add(-time.Hour), 0},
		{"long gone", now.AddDate(0, -1, 0), 0},
		{"exact days", now.Add(72 * time.Hour), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Campaign{EndDate: tc.end}
			require.Equal(t, tc.want, c.DaysRemainingAt(now))
		})
	}
}

func TestCampaignValidate(t *testing.T) {
	valid := func() Campaign {
		return Campaign{
			Title:       "Help the shelter",
			Description: "Food and meds",
			Category:    "Animal Welfare",
			GoalAmount:  dec("100"),
			EndDate:     time.Now().AddDate(0, 1, 0),
		}
	}
	ok := valid()
	require.NoError(t, ok.Validate())

	t.Run("missing title", func(t *testing.T) {
		c := valid()
		c.Title = ""
		require.Error(t, c.Validate())
	})
	t.Run("title too long", func(t *testing.T) {
		c := valid()
		for len(c.Title) <= 100 {
			c.Title += c.Title
		}
		require.Error(t, c.Validate())
	})
	t.Run("bad category", func(t *testing.T) {
		c := valid()
		c.Category = "Crypto"
		require.Error(t, c.Validate())
	})
	t.Run("zero goal", func(t *testing.T) {
		c := valid()
		c.GoalAmount = decimal.Zero
		require.Error(t, c.Validate())
	})
	t.Run("negative goal", func(t *testing.T) {
		c := valid()
		c.GoalAmount = dec("-5")
		require.Error(t, c.Validate())
	})
	t.Run("missing end date", func(t *testing.T) {
		c := valid()
		c.EndDate = time.Time{}
		require.Error(t, c.Validate())
	})
}
