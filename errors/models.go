package errors

const (
	CurrentPageInvalidErrorCode = 200_001
	ObjectIDNotFoundErrorCode   = 200_002
	DuplicatedObjectIDErrorCode = 200_003
	MatchTypeInvalidErrorCode   = 200_004
	DataAlreadyInUsedErrorCode  = 200_005
	PageOutOfRangeErrorCode     = 200_006
	ObjectInUseErrorCode        = 200_007
	InvalidPageErrorCode        = 200_008
)

// CurrentPageInvalidError indicates user gives invalid current page when searching items
var CurrentPageInvalidError = new(CurrentPageInvalidErrorCode, "CurrentPageInvalid", "Current page can be only positive integer")

// ObjectIDNotFoundError indicates user gives invalid item ID
var ObjectIDNotFoundError = new(ObjectIDNotFoundErrorCode, "ObjectIDNotFound", "Item with ID %s is not exist")

// DuplicatedObjectIDError indicates user create item using item ID that already in used
var DuplicatedObjectIDError = new(DuplicatedObjectIDErrorCode, "DuplicatedObjectID", "item ID %s is already used")

// MatchTypeInvalidError indicates user give invalid or unsupported match type when user search items
var MatchTypeInvalidError = new(MatchTypeInvalidErrorCode, "MatchTypeInvalid", "Match type %d is invalid or unsupported")

// DataAlreadyInUsedError indicates a unique field value (ISBN, username, genre name) is taken
var DataAlreadyInUsedError = new(DataAlreadyInUsedErrorCode, "DataAlreadyInUsed", "Data is already in used")

// PageOutOfRangeError indicates the requested page is after the last page
var PageOutOfRangeError = new(PageOutOfRangeErrorCode, "PageOutOfRange", "Page %d is out of range")

// ObjectInUseError indicates the item is still referenced and cannot be deleted
var ObjectInUseError = new(ObjectInUseErrorCode, "ObjectInUse", "Item with ID %s is still referenced by %s")

// InvalidPageError indicates the page query parameter is not a positive integer
var InvalidPageError = new(InvalidPageErrorCode, "InvalidPage", "Page %q is invalid")
