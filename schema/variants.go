package schema

// Field sets for the Sheets v4 API types used by the spreadsheet model.
var (
	SheetProperties = NewVariant("SheetProperties",
		"gridProperties",
		"hidden",
		"index",
		"rightToLeft",
		"sheetId",
		"sheetType",
		"tabColor",
		"title")

	GridProperties = NewVariant("GridProperties",
		"columnCount",
		"frozenColumnCount",
		"frozenRowCount",
		"hideGridlines",
		"rowCount")

	ValueRange = NewVariant("ValueRange",
		"majorDimension",
		"range",
		"values")

	GridRange = NewVariant("GridRange",
		"sheetId",
		"startRowIndex",
		"endRowIndex",
		"startColumnIndex",
		"endColumnIndex")

	NamedRange = NewVariant("NamedRange",
		"namedRangeId",
		"name",
		"range")

	AddSheetRequest = NewVariant("AddSheetRequest",
		"properties")

	DuplicateSheetRequest = NewVariant("DuplicateSheetRequest",
		"insertSheetIndex",
		"newSheetId",
		"newSheetName",
		"sourceSheetId")

	DeleteSheetRequest = NewVariant("DeleteSheetRequest",
		"sheetId")

	AddNamedRangeRequest = NewVariant("AddNamedRangeRequest",
		"namedRange")
)

// NewSheetProperties is a convenience constructor for a SheetProperties object.
func NewSheetProperties(fields ...Field) (*Object, error) {
	return New(SheetProperties, fields...)
}

func NewGridProperties(fields ...Field) (*Object, error) {
	return New(GridProperties, fields...)
}

func NewValueRange(fields ...Field) (*Object, error) {
	return New(ValueRange, fields...)
}

func NewGridRange(fields ...Field) (*Object, error) {
	return New(GridRange, fields...)
}

func NewNamedRange(fields ...Field) (*Object, error) {
	return New(NamedRange, fields...)
}

// NewDuplicateSheetRequest requires the source sheet ID, which the API does not default.
func NewDuplicateSheetRequest(sourceSheetId int64, fields ...Field) (*Object, error) {
	return New(DuplicateSheetRequest, append([]Field{F("sourceSheetId", sourceSheetId)}, fields...)...)
}

func NewDeleteSheetRequest(sheetId int64) (*Object, error) {
	return New(DeleteSheetRequest, F("sheetId", sheetId))
}
