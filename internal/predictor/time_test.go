package predictor

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "naive", input: `"2024-01-02T03:04:05"`, want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "naive fraction", input: `"2024-01-02T03:04:05.250"`, want: time.Date(2024, 1, 2, 3, 4, 5, 250000000, time.UTC)},
		{name: "zoned", input: `"2024-01-02T11:04:05+08:00"`, want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "space separated", input: `"2024-01-02 03:04:05"`, want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty", input: `""`},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12`, wantErr: true},
	}

	for i := range tests {
		test := tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var got Time
			err := json.Unmarshal([]byte(test.input), &got)
			if test.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) error = nil, want error", test.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", test.input, err)
			}
			if !got.Equal(test.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", test.input, got.Time, test.want)
			}
			if !got.IsZero() && got.Location() != time.UTC {
				t.Fatalf("Unmarshal(%s) location = %v, want UTC", test.input, got.Location())
			}
		})
	}
}

func TestTimeMarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Time{time.Date(2024, 1, 2, 11, 4, 5, 0, time.FixedZone("CST", 8*3600))})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-01-02T03:04:05"` {
		t.Fatalf("Marshal() = %s, want naive UTC", data)
	}
	data, _ = json.Marshal(Time{})
	if string(data) != "null" {
		t.Fatalf("Marshal(zero) = %s, want null", data)
	}
}
