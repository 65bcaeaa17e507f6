package bluetooth

// GattCallback receives connection state changes for a simulated GATT connection.
type GattCallback interface {
	OnConnectionStateChange(gatt *BluetoothGatt, status GattStatus, newState ConnectionState)
}

// GattCallbackFunc adapts a plain function to GattCallback.
type GattCallbackFunc func(gatt *BluetoothGatt, status GattStatus, newState ConnectionState)

func (f GattCallbackFunc) OnConnectionStateChange(gatt *BluetoothGatt, status GattStatus, newState ConnectionState) {
	f(gatt, status, newState)
}

// ConnectOption configures a ConnectGatt call.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	autoConnect bool
	transport   Transport
	phy         int
}

// WithAutoConnect records the autoConnect flag passed to ConnectGatt.
func WithAutoConnect(autoConnect bool) ConnectOption {
	return func(o *connectOptions) {
		o.autoConnect = autoConnect
	}
}

// WithTransport records the transport passed to ConnectGatt.
func WithTransport(transport Transport) ConnectOption {
	return func(o *connectOptions) {
		o.transport = transport
	}
}

// WithPhy records the preferred PHY mask passed to ConnectGatt.
func WithPhy(phy int) ConnectOption {
	return func(o *connectOptions) {
		o.phy = phy
	}
}

// BluetoothGatt is a simulated GATT connection handle.
//
// It keeps only its handle into the owning Registry; the remote device is
// resolved through the registry on demand.
type BluetoothGatt struct {
	handle      GattHandle
	registry    *Registry
	callback    GattCallback
	autoConnect bool
	transport   Transport
	phy         int
	state       ConnectionState
	closed      bool
}

func (g *BluetoothGatt) Handle() GattHandle {
	return g.handle
}

// Device returns the remote device that opened this connection, or nil if the
// registry no longer knows the handle.
func (g *BluetoothGatt) Device() *BluetoothDevice {
	dev, ok := g.registry.DeviceFor(g.handle)
	if !ok {
		return nil
	}
	return dev
}

func (g *BluetoothGatt) Callback() GattCallback {
	return g.callback
}

func (g *BluetoothGatt) AutoConnect() bool {
	return g.autoConnect
}

func (g *BluetoothGatt) Transport() Transport {
	return g.transport
}

// Phy returns the PHY mask requested at connect time, or 0 when none was given.
func (g *BluetoothGatt) Phy() int {
	return g.phy
}

// ConnectionState returns the last state delivered to this handle.
func (g *BluetoothGatt) ConnectionState() ConnectionState {
	return g.state
}

// Connect requests a reconnection. It succeeds unless the handle was closed.
func (g *BluetoothGatt) Connect() bool {
	if g.closed {
		return false
	}
	g.state = StateConnecting
	return true
}

// Disconnect marks the handle disconnected. No callback is delivered; tests
// drive callbacks explicitly through SimulateGattConnectionChange.
func (g *BluetoothGatt) Disconnect() {
	g.state = StateDisconnected
}

// Close releases the handle. It stays listed in the device's connections.
func (g *BluetoothGatt) Close() {
	g.state = StateDisconnected
	g.closed = true
}

func (g *BluetoothGatt) IsClosed() bool {
	return g.closed
}

func (g *BluetoothGatt) notify(status GattStatus, newState ConnectionState) {
	g.state = newState
	if g.callback != nil {
		g.callback.OnConnectionStateChange(g, status, newState)
	}
}
