package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {

	t.Run("Should format message from given arguments", func(t *testing.T) {

		err := ObjectIDNotFoundError.New("book_1")
		require.Equal(t, "Item with ID book_1 is not exist", err.Error())
		require.Equal(t, ObjectIDNotFoundErrorCode, err.Code)
		require.Equal(t, "ObjectIDNotFound", err.Name)
	})

	t.Run("Should not share message between created errors", func(t *testing.T) {

		first := ObjectIDNotFoundError.New("a")
		second := ObjectIDNotFoundError.New("b")

		require.NotEqual(t, first.Message, second.Message)
	})

	t.Run("Should keep message format when no argument given", func(t *testing.T) {

		require.Equal(t, "Current page can be only positive integer", CurrentPageInvalidError.New().Error())
	})
}

func TestIsError(t *testing.T) {

	err := fmt.Errorf("wrapped: %w", PermissionDeniedError.New("catalog.can_mark_returned"))

	require.True(t, stdErrors.Is(err, PermissionDeniedError.New()))
	require.False(t, stdErrors.Is(err, LoginRequiredError.New()))
	require.True(t, IsError(ObjectIDNotFoundError.New("x"), ObjectIDNotFoundError.New("x")))
	require.False(t, IsError(ObjectIDNotFoundError.New("x"), ObjectIDNotFoundError.New("y")))
	require.False(t, IsError(stdErrors.New("plain"), UnknownError.New("plain")))
}

func TestIsEqual(t *testing.T) {

	require.True(t, DataAlreadyInUsedError.IsEqual(DataAlreadyInUsedError.New()))
	require.False(t, DataAlreadyInUsedError.IsEqual(ObjectInUseError.New("a", "b")))
	require.False(t, DataAlreadyInUsedError.IsEqual(nil))
}

func TestStatusCode(t *testing.T) {

	var testCases = map[string]struct {
		Err      error
		Expected int
	}{
		"Not found":       {Err: ObjectIDNotFoundError.New("a"), Expected: 404},
		"Page out":        {Err: PageOutOfRangeError.New(3), Expected: 404},
		"Invalid page":    {Err: InvalidPageError.New("last"), Expected: 404},
		"Forbidden":       {Err: PermissionDeniedError.New("p"), Expected: 403},
		"Login":           {Err: LoginRequiredError.New(), Expected: 401},
		"In use":          {Err: ObjectInUseError.New("a", "books"), Expected: 409},
		"Validation":      {Err: DataValidationFailedError.New("x"), Expected: 400},
		"Uncoded error":   {Err: stdErrors.New("boom"), Expected: 500},
		"Coded unknown":   {Err: UnknownError.New("boom"), Expected: 500},
		"Current page":    {Err: CurrentPageInvalidError.New(), Expected: 400},
		"Duplicated data": {Err: DataAlreadyInUsedError.New(), Expected: 400},
	}

	for name, testCase := range testCases {

		t.Run(name, func(t *testing.T) {
			require.Equal(t, testCase.Expected, StatusCode(testCase.Err))
		})
	}
}
