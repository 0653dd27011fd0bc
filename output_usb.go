package main

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/gousb"
)

// AX206 photo frames expose a mass-storage interface with vendor SCSI
// commands; frames are blitted as raw RGB565.
const (
	ax206VID = 0x1908
	ax206PID = 0x0102

	ax206Interface = 0x00
	ax206EndpOut   = 0x01
	ax206EndpIn    = 0x81

	usbCmdSetProperty = 0x01
	usbCmdBlit        = 0x12
)

// rgb565Bytes converts a frame to the device's big-endian RGB565 layout.
func rgb565Bytes(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, w*h*2)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := uint16(r&0xF800) | uint16(g&0xFC00)>>5 | uint16(b&0xF800)>>11
			data[i] = byte(c >> 8)
			data[i+1] = byte(c)
			i += 2
		}
	}
	return data
}

// ax206Device is one open USB connection.
type ax206Device struct {
	Width  int
	Height int

	ctx     *gousb.Context
	device  *gousb.Device
	config  *gousb.Config
	intf    *gousb.Interface
	outEndp *gousb.OutEndpoint
	inEndp  *gousb.InEndpoint
}

func openAX206() (*ax206Device, error) {
	d := &ax206Device{ctx: gousb.NewContext()}

	var err error
	d.device, err = d.ctx.OpenDeviceWithVIDPID(ax206VID, ax206PID)
	if err != nil || d.device == nil {
		d.Close()
		return nil, fmt.Errorf("failed to open device: %v", err)
	}

	if d.config, err = d.device.Config(1); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to get config: %v", err)
	}

	if d.intf, err = d.config.Interface(ax206Interface, 0); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to claim interface: %v", err)
	}

	if d.outEndp, err = d.intf.OutEndpoint(ax206EndpOut); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to get out endpoint: %v", err)
	}
	if d.inEndp, err = d.intf.InEndpoint(ax206EndpIn); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to get in endpoint: %v", err)
	}

	if d.Width, d.Height, err = d.dimensions(); err != nil {
		d.Width, d.Height = 480, 320
		logWarnModule("ax206usb", "Dimension query failed, using defaults: %v", err)
	}

	return d, nil
}

func (d *ax206Device) dimensions() (width, height int, err error) {
	cmd := []byte{
		0xcd, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	data, err := d.scsiRead(cmd, 5)
	if err != nil {
		return 0, 0, err
	}
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("short dimension reply")
	}
	return int(data[0]) | int(data[1])<<8, int(data[2]) | int(data[3])<<8, nil
}

func (d *ax206Device) Brightness(lvl int) error {
	if lvl < 0 {
		lvl = 0
	}
	if lvl > 7 {
		lvl = 7
	}
	cmd := []byte{
		0xcd, 0, 0, 0,
		0, 6, usbCmdSetProperty,
		1, 0, // PROPERTY_BRIGHTNESS
		byte(lvl), byte(lvl >> 8),
		0, 0, 0, 0, 0,
	}
	return d.scsiWrite(cmd, nil)
}

func (d *ax206Device) Blit(img image.Image) error {
	r := img.Bounds()
	cmd := []byte{
		0xcd, 0, 0, 0,
		0, 6, usbCmdBlit,
		byte(r.Min.X), byte(r.Min.X >> 8),
		byte(r.Min.Y), byte(r.Min.Y >> 8),
		byte(r.Max.X - 1), byte((r.Max.X - 1) >> 8),
		byte(r.Max.Y - 1), byte((r.Max.Y - 1) >> 8),
		0,
	}
	return d.scsiWrite(cmd, rgb565Bytes(img))
}

func (d *ax206Device) Close() {
	if d.intf != nil {
		d.intf.Close()
		d.intf = nil
	}
	if d.config != nil {
		d.config.Close()
		d.config = nil
	}
	if d.device != nil {
		d.device.Close()
		d.device = nil
	}
	if d.ctx != nil {
		d.ctx.Close()
		d.ctx = nil
	}
}

func (d *ax206Device) scsiPrepare(cmd []byte, blockLen int, out bool) []byte {
	var flags byte = 0x00 // data out
	if !out {
		flags = 0x80 // data in
	}
	buf := []byte{
		0x55, 0x53, 0x42, 0x43, // dCBWSignature
		0xde, 0xad, 0xbe, 0xef, // dCBWTag
		byte(blockLen), byte(blockLen >> 8), byte(blockLen >> 16), byte(blockLen >> 24),
		flags,
		0x00, // bCBWLUN
		byte(len(cmd)),

		0xcd, 0x00, 0x00, 0x00,
		0x00, 0x06, 0x11, 0xf8,
		0x70, 0x00, 0x40, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	copy(buf[15:], cmd)
	return buf
}

func (d *ax206Device) scsiAck() error {
	buf := make([]byte, 13)
	n, err := d.inEndp.Read(buf)
	if err != nil {
		return fmt.Errorf("ACK read failed: %v", err)
	}
	if n < 4 || string(buf[:4]) != "USBS" {
		return fmt.Errorf("invalid ACK reply")
	}
	return nil
}

func (d *ax206Device) scsiWrite(cmd []byte, data []byte) error {
	if _, err := d.outEndp.Write(d.scsiPrepare(cmd, len(data), true)); err != nil {
		return fmt.Errorf("command write failed: %v", err)
	}
	if data != nil {
		if _, err := d.outEndp.Write(data); err != nil {
			return fmt.Errorf("data write failed: %v", err)
		}
	}
	return d.scsiAck()
}

func (d *ax206Device) scsiRead(cmd []byte, blockLen int) ([]byte, error) {
	if _, err := d.outEndp.Write(d.scsiPrepare(cmd, blockLen, false)); err != nil {
		return nil, fmt.Errorf("command write failed: %v", err)
	}
	data := make([]byte, blockLen)
	n, err := d.inEndp.Read(data)
	if err != nil {
		return nil, fmt.Errorf("data read failed: %v", err)
	}
	if err := d.scsiAck(); err != nil {
		return data[:n], err
	}
	return data[:n], nil
}

// USBOutputHandler keeps trying to reach a display: connects lazily,
// drops the device on transfer errors and reconnects on the next frame.
type USBOutputHandler struct {
	device    *ax206Device
	mutex     sync.Mutex
	lastError time.Time
}

func NewUSBOutputHandler() *USBOutputHandler {
	h := &USBOutputHandler{}
	h.tryConnect()
	return h
}

func (h *USBOutputHandler) tryConnect() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.device != nil {
		h.device.Close()
		h.device = nil
	}

	device, err := openAX206()
	if err != nil {
		// Only log occasionally to avoid spam while unplugged.
		if time.Since(h.lastError) > 10*time.Second {
			logWarnModule("ax206usb", "Device not available: %v", err)
			h.lastError = time.Now()
		}
		return
	}

	if err := device.Brightness(7); err != nil {
		logWarnModule("ax206usb", "Device test failed: %v", err)
		device.Close()
		return
	}

	h.device = device
	logInfoModule("ax206usb", "Connected, display %dx%d", device.Width, device.Height)
}

func (h *USBOutputHandler) Type() string {
	return "ax206usb"
}

func (h *USBOutputHandler) Output(img image.Image) error {
	h.mutex.Lock()
	device := h.device
	h.mutex.Unlock()

	if device == nil {
		h.tryConnect()
		h.mutex.Lock()
		device = h.device
		h.mutex.Unlock()
		if device == nil {
			return fmt.Errorf("device not available")
		}
	}

	if err := device.Blit(img); err != nil {
		logErrorModule("ax206usb", "Transfer failed: %v", err)
		h.mutex.Lock()
		if h.device != nil {
			h.device.Close()
			h.device = nil
		}
		h.mutex.Unlock()
		return err
	}
	return nil
}

func (h *USBOutputHandler) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.device != nil {
		logInfoModule("ax206usb", "Disconnecting")
		h.device.Close()
		h.device = nil
	}
	return nil
}
