package jsonadapt_test

import "github.com/google/go-cmp/cmp/cmpopts"

// cmpEmpty treats nil and empty slices and maps as equal.
var cmpEmpty = cmpopts.EquateEmpty()
