package testutil

import (
	id "surety/pkg/domain"
)

// Airline returns a deterministic airline identity for tests. Distinct n give
// distinct identities; n must be non-zero.
func Airline(n uint16) id.MemberID {
	var m id.MemberID
	m[0] = 0xa1
	m[18] = byte(n >> 8)
	m[19] = byte(n)
	return m
}

// Owner returns the deterministic contract owner identity used in tests.
func Owner() id.MemberID {
	var m id.MemberID
	m[0] = 0x0e
	m[19] = 0x01
	return m
}

// Module returns a deterministic module identity for tests.
func Module(n uint16) id.ModuleID {
	var m id.ModuleID
	m[0] = 0xc0
	m[18] = byte(n >> 8)
	m[19] = byte(n)
	return m
}
