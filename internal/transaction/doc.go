// Package transaction decides whether a payment needs step-up
// authentication and runs it.
//
// Amounts strictly above the threshold step up; amounts at or below it are
// approved without any ceremony. A step-up is two ceremonies: an
// announcement, after which StepUpRequired is emitted, and the verification
// itself. Transactions are never stored.
package transaction
