// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-sheets is a client side object model for Google Sheets spreadsheets.

Spreadsheets, worksheets and cell ranges are handled as structured objects rather than raw JSON. The
objects only accept the fields recognised by the Google Sheets v4 API, and the local copy of a
spreadsheet is refetched from Google Sheets after every structural change.

The packages are:

  - schema, for the allow-listed property objects (sheet properties, value ranges, grid ranges, etc)
  - spreadsheet, for the spreadsheet and worksheet model and the batch update protocol
  - gsheets, for the Google Sheets API implementation, OAuth2 authorisation and Drive revisions
  - tsv, to convert between worksheet ranges and TSV files

uhppoted-sheets supports the following commands:

  - authorise, to authorise application access to Google Sheets
  - sheets, to list the worksheets in a spreadsheet
  - get, to download a Google Sheets worksheet range as a TSV file
  - put, to store a TSV file to a Google Sheets worksheet
  - add-sheet, duplicate-sheet and delete-sheet, to manage worksheets
  - add-named-range, to name a block of cells
  - find, to locate a cell by value
  - revision, to display the latest revision of a spreadsheet
*/
package sheets
