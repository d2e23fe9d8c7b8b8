package cmd

import "testing"

func TestValidateFrameDims(t *testing.T) {
	type spec struct {
		width, height int
		expErr        bool
	}
	specs := []spec{
		{800, 800, false},
		{2, 2, false},
		{1, 800, true},
		{800, 1, true},
		{0, 0, true},
	}

	for index, s := range specs {
		err := validateFrameDims(s.width, s.height)
		if (err != nil) != s.expErr {
			t.Fatalf("[spec %d] expected error %t; got %v", index, s.expErr, err)
		}
	}
}
