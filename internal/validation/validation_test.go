package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Add(t *testing.T) {
	verrs := Errors{}
	verrs.Add("username", MsgRequired)
	verrs.Add("username", MsgUnique)
	verrs.Add("city", MsgRequired)

	assert.Equal(t, []string{MsgRequired, MsgUnique}, verrs["username"])
	assert.Equal(t, []string{MsgRequired}, verrs["city"])
}

func TestErrors_Error(t *testing.T) {
	verrs := Errors{
		"city":       {MsgRequired},
		"birth_date": {MsgRequired},
	}

	assert.Equal(t, "birth_date: This field is required.; city: This field is required.", verrs.Error())
}

func TestErrors_As(t *testing.T) {
	var err error = Errors{"content": {MsgBlank}}

	var verrs Errors
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{MsgBlank}, verrs["content"])
}

func TestMsgInvalidPK(t *testing.T) {
	assert.Equal(t, `Invalid pk "7" - object does not exist.`, MsgInvalidPK(7))
}
