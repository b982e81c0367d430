// Package store persists the phone book between runs.
//
// Two backends implement Store:
//   - JSONFile: a single JSON document, the default.
//   - SQLite: a contacts table, for users who prefer a database file.
//
// # Contract
//
//   - Load never fails. A missing, unreadable or malformed file yields an
//     empty contact list; the cause is logged at debug level.
//   - Save writes the whole list, replacing whatever was stored before.
//   - Order is preserved: Load returns contacts in the order they were saved.
//
// # JSON Format
//
// An array of objects with exactly four keys, written with four-space
// indentation and non-ASCII text left unescaped:
//
//	[
//	    {
//	        "Имя": "Иван",
//	        "Фамилия": "Петров",
//	        "Номер телефона": "89991234567",
//	        "Дата рождения": "01.01.2000"
//	    }
//	]
//
// "Дата рождения" is null when the contact has no birth date.
package store
