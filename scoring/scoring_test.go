package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "simple", in: "05:30", want: 330},
		{name: "zero", in: "00:00", want: 0},
		{name: "seconds not range checked", in: "05:99", want: 399},
		{name: "minutes past two digits", in: "123:07", want: 7387},
		{name: "single digit fields", in: "5:3", want: 303},
		{name: "missing colon", in: "0530", wantErr: true},
		{name: "empty minutes", in: ":30", wantErr: true},
		{name: "empty seconds", in: "05:", wantErr: true},
		{name: "letters", in: "ab:cd", wantErr: true},
		{name: "trailing junk", in: "05:30x", wantErr: true},
		{name: "negative minutes", in: "-05:30", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want string
	}{
		{name: "zero", in: 0, want: "00:00"},
		{name: "padded", in: 330, want: "05:30"},
		{name: "minutes grow", in: 6000, want: "100:00"},
		{name: "negative gets sign", in: -90, want: "-01:30"},
		{name: "negative under a minute", in: -5, want: "-00:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

// format(parse(s)) == s holds for clocks whose seconds field is in [0,59].
// Above 59 the parse is not injective ("99:99" and "100:39" both mean 6039),
// so the formatter can only answer with the normalized spelling.
func TestClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "05:30", "59:59", "99:59", "00:45"} {
		secs, err := ParseClock(s)
		require.NoError(t, err)
		require.Equal(t, s, FormatClock(secs), "round trip of %s", s)
	}

	secs, err := ParseClock("99:99")
	require.NoError(t, err)
	require.Equal(t, "100:39", FormatClock(secs))
}

func TestPenaltySeconds(t *testing.T) {
	tests := []struct {
		name   string
		issues Issues
		want   int
	}{
		{name: "clean run", issues: Issues{}, want: 0},
		{name: "one missing oyster", issues: Issues{MissingOysters: 1}, want: 20},
		{
			name: "one of each",
			issues: Issues{
				MissingOysters:    1,
				NotPlacedProperly: 1,
				BrokenShell:       1,
				GritBloodOther:    1,
				CutOysters:        1,
				NotSevered:        1,
			},
			want: 32,
		},
		{
			name:   "mixed counts",
			issues: Issues{MissingOysters: 2, BrokenShell: 3, NotSevered: 1},
			want:   2*20 + 3*1 + 1*3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.issues.PenaltySeconds())
		})
	}
}

func TestFinalTime(t *testing.T) {
	// raw=300, bonus=30, one missing oyster -> penalty 20 -> final 290.
	require.Equal(t, 290, FinalTime(300, 30, Issues{MissingOysters: 1}))

	// No clamping: bonus can push the final time negative.
	require.Equal(t, -10, FinalTime(20, 30, Issues{}))

	// Pure: same inputs, same output.
	issues := Issues{CutOysters: 2, GritBloodOther: 1}
	require.Equal(t, FinalTime(100, 5, issues), FinalTime(100, 5, issues))
}

func TestIssuesValid(t *testing.T) {
	require.True(t, Issues{}.Valid())
	require.True(t, Issues{MissingOysters: 3}.Valid())
	require.False(t, Issues{BrokenShell: -1}.Valid())
}
