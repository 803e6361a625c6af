package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"cabsync/internal/modules/rapido"
)

func bikeBuffer() []byte {
	var entry []byte
	entry = protowire.AppendTag(entry, 1, protowire.BytesType)
	entry = protowire.AppendString(entry, rapido.RideTypeBike)
	entry = protowire.AppendTag(entry, 3, protowire.Fixed64Type)
	entry = protowire.AppendFixed64(entry, math.Float64bits(42))
	entry = protowire.AppendTag(entry, 4, protowire.Fixed64Type)
	entry = protowire.AppendFixed64(entry, math.Float64bits(48))

	data := protowire.AppendTag(nil, 4, protowire.BytesType)
	data = protowire.AppendBytes(data, entry)
	raw := protowire.AppendTag(nil, 2, protowire.BytesType)
	return protowire.AppendBytes(raw, data)
}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type decoded struct {
	Rides []rapido.RideQuote `json:"rides"`
	Scan  struct {
		Stop string `json:"stop"`
	} `json:"scan"`
}

func TestRun_InputModes(t *testing.T) {
	raw := bikeBuffer()
	ints := make([]int, len(raw))
	for i, c := range raw {
		ints[i] = int(c)
	}
	envelope, err := json.Marshal(ints)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []byte
		opts options
	}{
		{"envelope", envelope, options{}},
		{"raw", raw, options{raw: true}},
		{"hex with whitespace", []byte(hex.EncodeToString(raw[:5]) + "\n" + hex.EncodeToString(raw[5:]) + "\n"), options{hexIn: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(bytes.NewReader(tt.in), &out, tt.opts, quiet()))

			var got decoded
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			require.Len(t, got.Rides, 1)
			require.Equal(t, "Rapido Bike", got.Rides[0].DisplayName)
			require.Equal(t, 42.0, got.Rides[0].PriceMin)
			require.Equal(t, 48.0, got.Rides[0].PriceMax)
			require.Equal(t, "end", got.Scan.Stop)
		})
	}
}

func TestRun_BadInput(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run(strings.NewReader(`{"error":"blocked"}`), &out, options{}, quiet()))
	require.Error(t, run(strings.NewReader("zz"), &out, options{hexIn: true}, quiet()))
}

func TestRun_TruncatedStillPrints(t *testing.T) {
	raw := append(bikeBuffer(), 0x12, 0x30)
	var out bytes.Buffer
	require.NoError(t, run(bytes.NewReader(raw), &out, options{raw: true}, quiet()))

	var got decoded
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Rides, 1)
	require.Equal(t, "truncated", got.Scan.Stop)
}

func TestRun_Dump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(bytes.NewReader(bikeBuffer()), &out, options{raw: true, dump: true}, quiet()))

	text := out.String()
	require.Contains(t, text, "2: message")
	require.Contains(t, text, "    1: text "+rapido.RideTypeBike)
	require.Contains(t, text, "(double 42)")
	require.Contains(t, text, "(double 48)")
}
