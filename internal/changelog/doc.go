// Package changelog models a GNU-style ChangeLog entry and renders it in the
// two layouts the commit hooks produce:
//   - the ChangeLog entry, a dated and signed block prepended to the ChangeLog file
//   - the commit message body, the same content without the header, wrapped
//     to commit-message widths
//
// Entry text is pure formatting; reading and writing the ChangeLog file is
// done by the composer package.
package changelog
