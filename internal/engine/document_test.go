package engine

import (
	"encoding/json"
	"testing"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const einvoiceWithExtras = `{"data":[{
	"Version":"1.1",
	"SellerDtls":{"Stcd":"29"},
	"BuyerDtls":{"Stcd":"27"},
	"EwbDtls":{"Distance":120},
	"PayDtls":{"Mode":"Cash"},
	"ItemList":[
		{"SlNo":"1","PrdDesc":"A","HsnCd":"1","Qty":1,"UnitPrice":10,"AssAmt":10,"IgstAmt":1.8,"TotItemVal":11.8,
		 "PrdSlNo":"SN-1","OrgCntry":"IN","BchDtls":{"Nm":"B1"}},
		{"SlNo":"2","PrdDesc":"B","HsnCd":"2","Qty":1,"UnitPrice":5,"AssAmt":5,"IgstAmt":0.9,"TotItemVal":5.9,
		 "PrdSlNo":"SN-2"}
	],
	"ValDtls":{"AssVal":15,"IgstVal":2.7,"TotInvVal":17.7,"TotInvValFc":0.21}
}]}`

func decodeRaw(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

func TestSession_EditKeepsUnmodelledFields(t *testing.T) {
	var doc domain.Document
	decodeRaw(t, []byte(einvoiceWithExtras), &doc)

	s := startTestSession(t, &doc)
	require.NoError(t, s.ApplyFieldEdit(0, FieldQuantity, "2"))
	require.NoError(t, s.DeleteItem(1))
	s.AddItem()

	payload, err := json.Marshal(s.Payload())
	require.NoError(t, err)

	var update struct {
		ItemList []map[string]json.RawMessage `json:"ItemList"`
		ValDtls  map[string]json.RawMessage   `json:"ValDtls"`
	}
	decodeRaw(t, payload, &update)
	require.Len(t, update.ItemList, 2)

	edited := update.ItemList[0]
	assert.JSONEq(t, `"SN-1"`, string(edited["PrdSlNo"]))
	assert.JSONEq(t, `"IN"`, string(edited["OrgCntry"]))
	assert.JSONEq(t, `{"Nm":"B1"}`, string(edited["BchDtls"]))
	assert.JSONEq(t, `20`, string(edited["AssAmt"]))
	assert.JSONEq(t, `21.8`, string(edited["TotItemVal"]))
	assert.NotContains(t, edited, "IsServc")
	assert.NotContains(t, edited, "FreeQty")

	added := update.ItemList[1]
	assert.JSONEq(t, `"New Product"`, string(added["PrdDesc"]))
	assert.Contains(t, added, "FreeQty")

	assert.JSONEq(t, `0.21`, string(update.ValDtls["TotInvValFc"]))

	working, err := json.Marshal(s.Working)
	require.NoError(t, err)
	var wire struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	decodeRaw(t, working, &wire)
	require.Len(t, wire.Data, 1)
	assert.JSONEq(t, `{"Distance":120}`, string(wire.Data[0]["EwbDtls"]))
	assert.JSONEq(t, `{"Mode":"Cash"}`, string(wire.Data[0]["PayDtls"]))
}

func TestSession_StoredSessionKeepsUnmodelledFields(t *testing.T) {
	var doc domain.Document
	decodeRaw(t, []byte(einvoiceWithExtras), &doc)

	s := startTestSession(t, &doc)
	assert.False(t, s.HasChanges())

	stored, err := json.Marshal(s)
	require.NoError(t, err)
	var loaded Session
	decodeRaw(t, stored, &loaded)

	assert.False(t, loaded.HasChanges())
	original, err := json.Marshal(loaded.Original)
	require.NoError(t, err)
	assert.JSONEq(t, einvoiceWithExtras, string(original))
}
