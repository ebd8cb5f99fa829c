package srgi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleData = `Prediksi Pasang Surut BIG
Lat: -8.437600  Lon: 112.667364

     Lat       Lon        yyyy-mm-dd hh:mm:ss (UTC)     z(m)
    -8.4376  112.6674     2026-01-01 00:00:00     0.135
    -8.4376  112.6674     2026-01-01 01:00:00     0.481

    -8.4376  112.6674     2026-01-01 02:00:00    -0.042
`

func TestDecoder_Header(t *testing.T) {
	assert := assert.New(t)
	dec, err := NewDecoder(strings.NewReader(sampleData))
	assert.NoError(err)
	t.Logf("Header: %+v", dec.Header)

	assert.Equal("Prediksi Pasang Surut BIG", dec.Header.Source)
	assert.True(dec.Header.HasPosition)
	assert.Equal(-8.4376, dec.Header.Lat)
	assert.Equal(112.667364, dec.Header.Lon)
	assert.Equal(ZoneWIB, dec.Header.Zone())
}

func TestDecoder_NextEpoch(t *testing.T) {
	assert := assert.New(t)
	dec, err := NewDecoder(strings.NewReader(sampleData))
	if err != nil {
		t.Fatalf("%v", err)
	}

	epochs := []Epoch{}
	for dec.NextEpoch() {
		epochs = append(epochs, *dec.Epoch())
	}
	assert.NoError(dec.Err())
	assert.Equal(3, len(epochs))

	first := epochs[0]
	assert.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), first.Time)
	assert.Equal(-8.4376, first.Lat)
	assert.Equal(112.6674, first.Lon)
	assert.Equal(0.135, first.Elevation)

	assert.Equal(-0.042, epochs[2].Elevation)
}

func TestDecoder_NoHeader(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("just some text\nwithout a column header\n"))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestDecoder_NoCoordinates(t *testing.T) {
	assert := assert.New(t)
	data := `Prediksi Pasang Surut BIG

     Lat       Lon        yyyy-mm-dd hh:mm:ss (UTC)     z(m)
    -8.4376  112.6674     2026-01-01 00:00:00     0.135
`
	dec, err := NewDecoder(strings.NewReader(data))
	assert.NoError(err)
	assert.False(dec.Header.HasPosition)
	assert.Equal(ZoneWIB, dec.Header.Zone())
}

func TestDecoder_EmptyDataSection(t *testing.T) {
	assert := assert.New(t)
	data := `Prediksi Pasang Surut BIG
Lat: -8.437600  Lon: 112.667364

     Lat       Lon        yyyy-mm-dd hh:mm:ss (UTC)     z(m)
`
	dec, err := NewDecoder(strings.NewReader(data))
	assert.NoError(err)
	assert.True(dec.Header.HasPosition)

	assert.False(dec.NextEpoch())
	assert.NoError(dec.Err())
	assert.Nil(dec.Epoch())
}

func TestDecoder_MalformedRecord(t *testing.T) {
	assert := assert.New(t)
	data := `Lat: -8.437600  Lon: 112.667364
     Lat       Lon        yyyy-mm-dd hh:mm:ss (UTC)     z(m)
    -8.4376  112.6674     2026-01-01 00:00:00
`
	dec, err := NewDecoder(strings.NewReader(data))
	assert.NoError(err)
	assert.False(dec.NextEpoch())
	assert.Error(dec.Err())
	assert.Contains(dec.Err().Error(), "line 3")
}

func TestZoneForLongitude(t *testing.T) {
	tests := []struct {
		lon  float64
		want Zone
	}{
		{106.8, ZoneWIB},  // Jakarta
		{112.7, ZoneWIB},  // Malang
		{114.8, ZoneWITA}, // boundary belongs to the eastern zone
		{119.4, ZoneWITA}, // Makassar
		{129.0, ZoneWIT},  // boundary belongs to the eastern zone
		{140.7, ZoneWIT},  // Jayapura
	}

	for _, tc := range tests {
		got := ZoneForLongitude(tc.lon)
		assert.Equal(t, tc.want, got, "lon %.1f", tc.lon)
	}
}
