// Package contact defines the phone book record and the predicates that
// decide whether its fields are acceptable.
//
// # Field Rules
//
//   - Names: letters, digits and spaces only, in title case. Title case uses
//     the literal rule: an upper-case rune may only follow an uncased rune,
//     a lower-case rune may only follow a cased rune, and at least one cased
//     rune must be present. "Anna Maria" and "Anna3" pass, "anna" and
//     "Anna3b" do not.
//   - Phone: a leading "+7" is read as "8"; the result must be exactly 11
//     ASCII digits.
//   - Birth date: DD.MM.YYYY naming a real calendar day.
//
// Validators are pure. NormalizeName is the only transformation applied to
// user input before validation.
package contact
