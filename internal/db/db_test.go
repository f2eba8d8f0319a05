package db

import "testing"

func TestDSNWithTimezone(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		tz   string
		want string
	}{
		{
			name: "keyword dsn",
			dsn:  "host=127.0.0.1 dbname=btrscout",
			tz:   "UTC",
			want: "host=127.0.0.1 dbname=btrscout TimeZone=UTC",
		},
		{
			name: "url dsn without query",
			dsn:  "postgres://u:p@127.0.0.1/btrscout",
			tz:   "UTC",
			want: "postgres://u:p@127.0.0.1/btrscout?TimeZone=UTC",
		},
		{
			name: "url dsn with query",
			dsn:  "postgres://u:p@127.0.0.1/btrscout?sslmode=disable",
			tz:   "Europe/London",
			want: "postgres://u:p@127.0.0.1/btrscout?sslmode=disable&TimeZone=Europe/London",
		},
		{
			name: "already set",
			dsn:  "host=127.0.0.1 TimeZone=UTC",
			tz:   "Europe/London",
			want: "host=127.0.0.1 TimeZone=UTC",
		},
		{
			name: "empty timezone",
			dsn:  "host=127.0.0.1",
			tz:   "",
			want: "host=127.0.0.1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dsnWithTimezone(tc.dsn, tc.tz); got != tc.want {
				t.Fatalf("dsnWithTimezone(%q, %q) = %q, want %q", tc.dsn, tc.tz, got, tc.want)
			}
		})
	}
}
