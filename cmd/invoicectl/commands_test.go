package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interStateDoc = `{"data":[{
	"SellerDtls":{"Stcd":"27"},
	"BuyerDtls":{"Stcd":"29"},
	"ItemList":[
		{"SlNo":"1","PrdDesc":"Widget","Qty":2,"UnitPrice":100,"AssAmt":200,"GstRt":18,"IgstAmt":36,"TotItemVal":236},
		{"SlNo":"2","PrdDesc":"Bolt","Qty":10,"UnitPrice":5,"AssAmt":50,"GstRt":18,"IgstAmt":9,"TotItemVal":59}
	],
	"ValDtls":{"AssVal":250,"IgstVal":45,"TotInvVal":295}
}]}`

func writeTempDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice.json")
	require.NoError(t, os.WriteFile(path, []byte(interStateDoc), 0o644))
	return path
}

func TestParseFieldEdit(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    fieldEdit
		wantErr bool
	}{
		{name: "quantity", raw: "0:Qty=5", want: fieldEdit{Index: 0, Field: engine.FieldQuantity, Value: "5"}},
		{name: "value with equals sign", raw: "2:PrdDesc=a=b", want: fieldEdit{Index: 2, Field: engine.FieldDescription, Value: "a=b"}},
		{name: "empty value", raw: "1:Unit=", want: fieldEdit{Index: 1, Field: engine.FieldUnit, Value: ""}},
		{name: "missing index", raw: "Qty=5", wantErr: true},
		{name: "bad index", raw: "x:Qty=5", wantErr: true},
		{name: "missing value", raw: "0:Qty", wantErr: true},
		{name: "missing field", raw: "0:=5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFieldEdit(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecalcFile_AppliesEditsInOrder(t *testing.T) {
	path := writeTempDocument(t)
	charges := "25"

	session, err := recalcFile(path, []int{0}, 1, []fieldEdit{
		{Index: 0, Field: engine.FieldQuantity, Value: "20"},
	}, &charges)
	require.NoError(t, err)

	inv := session.Invoice()
	require.Len(t, inv.ItemList, 2)
	assert.Equal(t, "Bolt", inv.ItemList[0].PrdDesc)
	assert.Equal(t, "1", inv.ItemList[0].SlNo)
	assert.Equal(t, 100.0, inv.ItemList[0].AssAmt)
	assert.Equal(t, "2", inv.ItemList[1].SlNo)
	assert.Equal(t, 25.0, inv.ValDtls.OthChrg)
	assert.True(t, session.HasChanges())
}

func TestRecalcFile_RepeatedDeleteIndex(t *testing.T) {
	path := writeTempDocument(t)

	session, err := recalcFile(path, []int{1, 1}, 0, nil, nil)
	require.NoError(t, err)

	inv := session.Invoice()
	require.Len(t, inv.ItemList, 1)
	assert.Equal(t, "Widget", inv.ItemList[0].PrdDesc)
}

func TestRecalcFile_Errors(t *testing.T) {
	path := writeTempDocument(t)

	_, err := recalcFile(path, []int{7}, 0, nil, nil)
	assert.ErrorIs(t, err, engine.ErrItemIndexOutOfRange)

	_, err = recalcFile(path, nil, 0, []fieldEdit{{Index: 0, Field: engine.FieldGstRate, Value: "5"}}, nil)
	assert.ErrorIs(t, err, engine.ErrFieldLocked)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = recalcFile(bad, nil, 0, nil, nil)
	assert.Error(t, err)
}

func TestRecalcCommand_Write(t *testing.T) {
	path := writeTempDocument(t)
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	err := app.Run([]string{"invoicectl", "recalc", "--set", "1:UnitPrice=6", "--write", path})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "wrote "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc domain.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 60.0, doc.Invoice().ItemList[1].AssAmt)
}

func TestRecalcCommand_NoChanges(t *testing.T) {
	path := writeTempDocument(t)
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"invoicectl", "recalc", path}))
	assert.Contains(t, out.String(), "no changes")
	assert.Contains(t, out.String(), "Widget")
}

func TestFilesCommand(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file", r.URL.Path)
		_, _ = w.Write([]byte(`{"files":["b.json","a.json","notes.txt"]}`))
	}))
	defer backend.Close()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run([]string{"invoicectl", "--api", backend.URL, "files", "--type", "json"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a.json")
	assert.Contains(t, out.String(), "b.json")
	assert.NotContains(t, out.String(), "notes.txt")
	assert.Contains(t, out.String(), "2 of 3 files")
}

func TestRecalcCommand_WriteKeepsUnmodelledFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "einvoice.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[{
		"SellerDtls":{"Stcd":"27"},
		"BuyerDtls":{"Stcd":"29"},
		"EwbDtls":{"Distance":120},
		"ItemList":[{"SlNo":"1","PrdDesc":"Widget","Qty":1,"UnitPrice":100,"AssAmt":100,"IgstAmt":18,"TotItemVal":118,"PrdSlNo":"SN-1"}],
		"ValDtls":{"AssVal":100,"IgstVal":18,"TotInvVal":118}
	}]}`), 0o644))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	require.NoError(t, app.Run([]string{"invoicectl", "recalc", "--set", "0:Qty=2", "--write", path}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"EwbDtls"`)
	assert.Contains(t, string(raw), `"PrdSlNo": "SN-1"`)
	assert.Contains(t, string(raw), `"TotItemVal": 218`)
	assert.NotContains(t, string(raw), `"FreeQty"`)
}
