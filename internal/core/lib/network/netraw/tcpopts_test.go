package netraw

import "testing"

func TestEncodeDecodeOptionsRoundTrip(t *testing.T) {
	opts := []TCPOption{
		NewMSSOption(1460),
		NewSACKPermittedOption(),
		NewWScaleOption(7),
		NewTimestampOption(111, 222),
	}

	buf, err := EncodeOptions(opts)
	if err != nil {
		t.Fatalf("EncodeOptions: %v", err)
	}
	if len(buf)%4 != 0 {
		t.Fatalf("encoded options length %d is not a multiple of 4", len(buf))
	}

	decoded, err := DecodeOptions(buf)
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}

	// NOP padding may be interspersed, so filter it out before comparing.
	var got []TCPOption
	for _, o := range decoded {
		if o.Kind != TCPOptionNOP {
			got = append(got, o)
		}
	}
	if len(got) != len(opts) {
		t.Fatalf("decoded %d non-NOP options, want %d: %+v", len(got), len(opts), got)
	}
	if got[0].Kind != TCPOptionMSS || got[0].MSS != 1460 {
		t.Errorf("option 0 = %+v, want MSS(1460)", got[0])
	}
	if got[1].Kind != TCPOptionSACKPermit {
		t.Errorf("option 1 = %+v, want SACK-Permitted", got[1])
	}
	if got[2].Kind != TCPOptionWScale || got[2].WScale != 7 {
		t.Errorf("option 2 = %+v, want WScale(7)", got[2])
	}
	if got[3].Kind != TCPOptionTimestamp || got[3].Timestamp != [2]uint32{111, 222} {
		t.Errorf("option 3 = %+v, want Timestamp(111,222)", got[3])
	}
}

func TestEncodeOptionsSACKBlocks(t *testing.T) {
	blocks := []SACKBlock{{Left: 100, Right: 200}, {Left: 300, Right: 400}}
	buf, err := EncodeOptions([]TCPOption{NewSACKOption(blocks)})
	if err != nil {
		t.Fatalf("EncodeOptions: %v", err)
	}
	decoded, err := DecodeOptions(buf)
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	var sack *TCPOption
	for i := range decoded {
		if decoded[i].Kind == TCPOptionSACK {
			sack = &decoded[i]
		}
	}
	if sack == nil {
		t.Fatal("no SACK option found in decoded result")
	}
	if len(sack.SACK) != 2 || sack.SACK[0] != blocks[0] || sack.SACK[1] != blocks[1] {
		t.Errorf("SACK blocks = %+v, want %+v", sack.SACK, blocks)
	}
}

func TestEncodeOptionsRejectsEmptySACK(t *testing.T) {
	if _, err := EncodeOptions([]TCPOption{NewSACKOption(nil)}); err == nil {
		t.Error("expected error for SACK option with no blocks")
	}
}

func TestDecodeOptionsRejectsOvershootingLength(t *testing.T) {
	// kind=MSS, length=4, but only 2 bytes remain in the buffer.
	buf := []byte{TCPOptionMSS, 4, 0x05}
	if _, err := DecodeOptions(buf); err == nil {
		t.Error("expected error for option length overshooting the options area")
	}
}

func TestDecodeOptionsStopsAtEOL(t *testing.T) {
	buf := []byte{TCPOptionNOP, TCPOptionEOL, TCPOptionMSS, 4, 0x05, 0xB4}
	opts, err := DecodeOptions(buf)
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if len(opts) != 2 || opts[1].Kind != TCPOptionEOL {
		t.Errorf("opts = %+v, want [NOP, EOL] with scanning stopped at EOL", opts)
	}
}
