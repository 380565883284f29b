package main

import (
	"time"

	"github.com/Nic0w/dgc-decoder/internal/hcert"
)

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func firstVaccine(v []hcert.Vaccine) *hcert.Vaccine {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}

func firstTest(t []hcert.Test) *hcert.Test {
	if len(t) == 0 {
		return nil
	}
	return &t[0]
}

func firstRecovery(r []hcert.Recovery) *hcert.Recovery {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}
