package usecase

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/BarzMap/ParksApp/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMultipartForm собирает multipart.Form так же, как это делает
// net/http при разборе входящего запроса.
func buildMultipartForm(t *testing.T, fields map[string]string, files [][]byte) *multipart.Form {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for i, content := range files {
		part, err := writer.CreateFormFile("images", "photo.jpg")
		require.NoError(t, err, "file %d", i)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func validFields() map[string]string {
	return map[string]string{
		"name":      "Sunset Calisthenics Park",
		"latitude":  "55.751244",
		"longitude": "37.618423",
	}
}

func TestParseSubmissionForm_MinimalValid(t *testing.T) {
	form := buildMultipartForm(t, validFields(), nil)

	submission, err := ParseSubmissionForm(form)

	require.NoError(t, err)
	assert.Equal(t, "Sunset Calisthenics Park", submission.Name)
	assert.InDelta(t, 55.751244, submission.Latitude, 1e-9)
	assert.InDelta(t, 37.618423, submission.Longitude, 1e-9)
	assert.Nil(t, submission.Description)
	assert.Nil(t, submission.SubmittedBy)
	assert.Empty(t, submission.EquipmentIDs)
	assert.Empty(t, submission.Images)
}

func TestParseSubmissionForm_TrimsNameAndAddress(t *testing.T) {
	fields := validFields()
	fields["name"] = "  Sunset Park  "
	fields["address"] = "  Main Street 1  "
	form := buildMultipartForm(t, fields, nil)

	submission, err := ParseSubmissionForm(form)

	require.NoError(t, err)
	assert.Equal(t, "Sunset Park", submission.Name)
	require.NotNil(t, submission.Address)
	assert.Equal(t, "Main Street 1", *submission.Address)
}

func TestParseSubmissionForm_MissingName(t *testing.T) {
	fields := validFields()
	fields["name"] = "   "
	form := buildMultipartForm(t, fields, nil)

	_, err := ParseSubmissionForm(form)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "name is required")
}

func TestParseSubmissionForm_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "non-numeric latitude", field: "latitude", value: "abc"},
		{name: "missing longitude", field: "longitude", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields[tt.field] = tt.value
			form := buildMultipartForm(t, fields, nil)

			_, err := ParseSubmissionForm(form)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestParseSubmissionForm_LatitudeOutOfRange(t *testing.T) {
	fields := validFields()
	fields["latitude"] = "91.5"
	form := buildMultipartForm(t, fields, nil)

	_, err := ParseSubmissionForm(form)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "latitude must be between -90 and 90")
}

func TestParseSubmissionForm_TooManyImages(t *testing.T) {
	files := make([][]byte, domain.MaxSubmissionImages+1)
	for i := range files {
		files[i] = []byte{0xFF, 0xD8, 0xFF}
	}
	form := buildMultipartForm(t, validFields(), files)

	_, err := ParseSubmissionForm(form)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages[0], "maximum of 5 images")
}

func TestParseSubmissionForm_InvalidSubmittedBy(t *testing.T) {
	fields := validFields()
	fields["submitted_by"] = "not-a-uuid"
	form := buildMultipartForm(t, fields, nil)

	_, err := ParseSubmissionForm(form)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "invalid submitted_by UUID format")
}

func TestParseSubmissionForm_EquipmentIDs(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	fields := validFields()
	fields["equipment_ids"] = `["` + first.String() + `","` + second.String() + `"]`
	form := buildMultipartForm(t, fields, nil)

	submission, err := ParseSubmissionForm(form)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, submission.EquipmentIDs)
}

func TestParseSubmissionForm_EquipmentIDsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "pullup-bar,rings"},
		{name: "json but not uuids", value: `["pullup-bar"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields["equipment_ids"] = tt.value
			form := buildMultipartForm(t, fields, nil)

			_, err := ParseSubmissionForm(form)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Messages[0], "invalid equipment_ids format")
		})
	}
}

func TestParseSubmissionForm_AltTextsAlignedByPosition(t *testing.T) {
	fields := validFields()
	fields["image_alt_texts"] = `["front view", null]`
	files := [][]byte{
		[]byte("first image bytes"),
		[]byte("second image bytes"),
		[]byte("third image bytes"),
	}
	form := buildMultipartForm(t, fields, files)

	submission, err := ParseSubmissionForm(form)

	require.NoError(t, err)
	require.Len(t, submission.Images, 3)

	require.NotNil(t, submission.Images[0].AltText)
	assert.Equal(t, "front view", *submission.Images[0].AltText)
	// null в JSON и отсутствующая позиция дают одно и то же: nil
	assert.Nil(t, submission.Images[1].AltText)
	assert.Nil(t, submission.Images[2].AltText)

	assert.Equal(t, []byte("first image bytes"), submission.Images[0].FileData)
	assert.Equal(t, []byte("third image bytes"), submission.Images[2].FileData)
}

func TestParseSubmissionForm_AltTextTooLong(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	fields := validFields()
	fields["image_alt_texts"] = `["` + string(long) + `"]`
	form := buildMultipartForm(t, fields, [][]byte{[]byte("image bytes")})

	_, err := ParseSubmissionForm(form)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages[0], "alt text for image 1")
}
