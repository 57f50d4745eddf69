package addr

import "testing"

func TestParseIPv4(t *testing.T) {
	cases := []struct {
		in      string
		wantErr Kind
	}{
		{"192.168.1.1", 0},
		{"0.0.0.0", 0},
		{"255.255.255.255", 0},
		{"192.168.1", BadOctetCount},
		{"192.168.1.1.1", BadOctetCount},
		{"192.168.1.256", OctetOutOfRange},
		{"192.168.1.abc", MalformedSyntax},
		{"192.168..1", MalformedSyntax},
	}
	for _, c := range cases {
		ip, err := ParseIPv4(c.in)
		if c.wantErr == 0 {
			if err != nil {
				t.Errorf("ParseIPv4(%q): unexpected error: %v", c.in, err)
			} else if len(ip) != 4 {
				t.Errorf("ParseIPv4(%q): expected 4-byte address, got %d bytes", c.in, len(ip))
			}
			continue
		}
		if err == nil {
			t.Errorf("ParseIPv4(%q): expected error kind %s, got nil", c.in, c.wantErr)
			continue
		}
		pe, ok := err.(*ParseError)
		if !ok || pe.Kind != c.wantErr {
			t.Errorf("ParseIPv4(%q): expected kind %s, got %v", c.in, c.wantErr, err)
		}
	}
}

func TestParseIPv6(t *testing.T) {
	cases := []struct {
		in      string
		wantErr Kind
	}{
		{"::1", 0},
		{"2001:db8::1", 0},
		{"fe80::1%eth0", MalformedSyntax},
		{"not-an-address", MalformedSyntax},
		{"192.168.1.1", MalformedSyntax},
	}
	for _, c := range cases {
		ip, err := ParseIPv6(c.in)
		if c.wantErr == 0 {
			if err != nil {
				t.Errorf("ParseIPv6(%q): unexpected error: %v", c.in, err)
			} else if len(ip) != 16 {
				t.Errorf("ParseIPv6(%q): expected 16-byte address, got %d bytes", c.in, len(ip))
			}
			continue
		}
		if err == nil {
			t.Errorf("ParseIPv6(%q): expected error kind %s, got nil", c.in, c.wantErr)
		}
	}
}

func TestParseNetmaskDotted(t *testing.T) {
	cases := []struct {
		in      string
		wantErr Kind
	}{
		{"255.255.255.0", 0},
		{"255.255.0.0", 0},
		{"255.255.255.255", 0},
		{"0.0.0.0", 0},
		{"255.0.255.0", BadMask}, // not contiguous 1*0*
		{"255.255.255", BadOctetCount},
	}
	for _, c := range cases {
		_, err := ParseNetmask(c.in, 4)
		if c.wantErr == 0 {
			if err != nil {
				t.Errorf("ParseNetmask(%q): unexpected error: %v", c.in, err)
			}
			continue
		}
		pe, ok := err.(*ParseError)
		if !ok || pe.Kind != c.wantErr {
			t.Errorf("ParseNetmask(%q): expected kind %s, got %v", c.in, c.wantErr, err)
		}
	}
}

func TestParseNetmaskCIDR(t *testing.T) {
	mask, err := ParseNetmask("/24", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{255, 255, 255, 0}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}

	if _, err := ParseNetmask("/33", 4); err == nil {
		t.Fatal("expected error for /33 on a 32-bit width")
	}
}

func TestValidateMaskBytes(t *testing.T) {
	if err := ValidateMaskBytes([]byte{0xff, 0xff, 0xff, 0x00}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMaskBytes([]byte{0xff, 0x00, 0xff, 0x00}); err == nil {
		t.Error("expected BadMask for non-contiguous pattern")
	}
}
