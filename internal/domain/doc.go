// Package domain contains the job board's core entities: job postings, the
// companies that own them and the applications submitted against them. It
// holds entity construction and validation rules and has no knowledge of
// HTTP or storage.
package domain
