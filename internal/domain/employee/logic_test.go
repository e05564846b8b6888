package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEmployees() []Employee {
	return []Employee{
		{ID: 1, EmployeeID: 112, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Engineering", Position: "Engineer", Status: StatusActive},
		{ID: 2, EmployeeID: 113, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Department: "Engineering", Position: "Admiral", Status: StatusInactive},
		{ID: 3, EmployeeID: 114, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Department: "Research", Position: "Scientist", Status: StatusActive},
	}
}

func TestDirectoryMapsBothWays(t *testing.T) {
	d := NewDirectory(sampleEmployees())

	biz, ok := d.BusinessID(2)
	require.True(t, ok)
	assert.Equal(t, BusinessID(113), biz)

	pk, ok := d.StorageID(114)
	require.True(t, ok)
	assert.Equal(t, StorageID(3), pk)

	_, ok = d.BusinessID(99)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	all := sampleEmployees()

	assert.Len(t, Apply(all, Filter{}), 3)
	assert.Len(t, Apply(all, Filter{Department: "engineering"}), 2)
	assert.Len(t, Apply(all, Filter{Department: "Engineering", Status: StatusActive}), 1)

	byName := Apply(all, Filter{Query: "TURING"})
	require.Len(t, byName, 1)
	assert.Equal(t, StorageID(3), byName[0].ID)

	byEmail := Apply(all, Filter{Query: "grace@"})
	require.Len(t, byEmail, 1)
}

func TestMatchEmail(t *testing.T) {
	all := sampleEmployees()

	e, ok := MatchEmail(all, "ADA@example.com")
	require.True(t, ok)
	assert.Equal(t, BusinessID(112), e.EmployeeID)

	_, ok = MatchEmail(all, "ada@")
	assert.False(t, ok, "partial matches are not accepted")

	dup := append(all, Employee{ID: 9, EmployeeID: 200, Email: "ada@example.com"})
	_, ok = MatchEmail(dup, "ada@example.com")
	assert.False(t, ok, "ambiguous matches are not accepted")
}

func TestInputValidate(t *testing.T) {
	valid := Input{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Engineering", Position: "Engineer", Salary: 1000, HireDate: "2024-01-15"}
	require.NoError(t, valid.Validate())

	negative := valid
	negative.Salary = -1
	assert.Error(t, negative.Validate())

	badDate := valid
	badDate.HireDate = "15/01/2024"
	assert.Error(t, badDate.Validate())

	badStatus := valid
	badStatus.Status = "retired"
	assert.Error(t, badStatus.Validate())

	missing := valid
	missing.Position = ""
	assert.Error(t, missing.Validate())
}

func TestInputFromCopiesEditableFields(t *testing.T) {
	e := sampleEmployees()[0]
	in := InputFrom(e)
	assert.Equal(t, e.Email, in.Email)
	assert.Equal(t, e.Status, in.Status)
	require.NoError(t, in.Validate())
}
