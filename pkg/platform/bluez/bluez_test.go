package bluez

import (
	"testing"

	dbus "github.com/godbus/dbus/v5"
)

func TestDevicePathRoundTrip(t *testing.T) {
	a := &Adapter{adapterPath: dbus.ObjectPath("/org/bluez/hci0")}

	path := a.devicePath("AA:BB:CC:DD:EE:FF")
	if path != "/org/bluez/hci0/dev_AA_BB_CC_DD_EE_FF" {
		t.Errorf("devicePath = %s", path)
	}
	if got := macFromPath(path); got != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("macFromPath = %s", got)
	}
}

func TestMacFromPathInvalid(t *testing.T) {
	if got := macFromPath("/org/bluez/hci0"); got != "" {
		t.Errorf("macFromPath(no device) = %q, want empty", got)
	}
}
