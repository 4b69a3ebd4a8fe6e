// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package maintenance derives recurring maintenance dates from a device's
// schedule parameters and estimates maintenance cost.
//
// Everything here is pure: no storage, no clock. Materialising occurrences as
// reservations is done by the service layer on top of [GenerateSchedule] and
// [NextOccurrence].
package maintenance
