package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithSSLMode(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{
			in:   "postgres://u:p@db:5432/tidelogs",
			want: "postgres://u:p@db:5432/tidelogs?sslmode=disable",
		},
		{
			in:   "postgres://u:p@db:5432/tidelogs?application_name=tl",
			want: "postgres://u:p@db:5432/tidelogs?application_name=tl&sslmode=disable",
		},
		{
			in:   "postgres://u:p@db:5432/tidelogs?sslmode=require",
			want: "postgres://u:p@db:5432/tidelogs?sslmode=require",
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, withSSLMode(tc.in))
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	err := Migrate("postgres://u:p@localhost:1/x", t.TempDir()+"/nope", 1, time.Millisecond)
	assert.Error(t, err)
}
