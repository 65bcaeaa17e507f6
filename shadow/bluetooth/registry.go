package bluetooth

import (
	"sort"
	"strings"
	"sync"

	"github.com/cornelk/hashmap"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GattHandle is the opaque identity of a simulated GATT connection.
type GattHandle uuid.UUID

func (h GattHandle) String() string {
	return uuid.UUID(h).String()
}

// AdapterService is the platform Bluetooth service a real device object
// would reach through the OS service manager.
type AdapterService interface {
	ServiceName() string
}

// ServiceProvider resolves the adapter service. It may fail or panic; callers
// go through BluetoothDevice.AdapterService, which reports failures as absent.
type ServiceProvider func() (AdapterService, error)

type gattEntry struct {
	gatt    *BluetoothGatt
	address string
}

// Registry owns every simulated device and GATT handle of one test.
// Devices are keyed by address; GATT handles map to the address of the
// device that opened them, in registration order.
type Registry struct {
	devices *hashmap.Map[string, *BluetoothDevice]

	mu    sync.RWMutex
	gatts *orderedmap.OrderedMap[GattHandle, gattEntry]

	provider ServiceProvider
	logger   *logrus.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		devices: hashmap.New[string, *BluetoothDevice](),
		gatts:   orderedmap.New[GattHandle, gattEntry](),
		logger:  logger,
	}
}

// NormalizeAddress upper-cases a hardware address, the form the platform uses.
func NormalizeAddress(address string) string {
	return strings.ToUpper(strings.TrimSpace(address))
}

// RemoteDevice returns the device for address, creating it on first use.
// The same address always yields the same instance.
func (r *Registry) RemoteDevice(address string) *BluetoothDevice {
	address = NormalizeAddress(address)
	if dev, ok := r.devices.Get(address); ok {
		return dev
	}

	dev, loaded := r.devices.GetOrInsert(address, newBluetoothDevice(address, r))
	if !loaded {
		r.logger.WithField("address", address).Debug("Remote device created")
	}
	return dev
}

// Lookup returns the device for address if it has been created.
func (r *Registry) Lookup(address string) (*BluetoothDevice, bool) {
	return r.devices.Get(NormalizeAddress(address))
}

// Devices returns all registered devices ordered by address.
func (r *Registry) Devices() []*BluetoothDevice {
	devices := make([]*BluetoothDevice, 0, r.devices.Len())
	r.devices.Range(func(_ string, dev *BluetoothDevice) bool {
		devices = append(devices, dev)
		return true
	})
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].address < devices[j].address
	})
	return devices
}

// Gatt returns the GATT connection registered under handle.
func (r *Registry) Gatt(handle GattHandle) (*BluetoothGatt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.gatts.Get(handle)
	if !ok {
		return nil, false
	}
	return entry.gatt, true
}

// Gatts returns every registered GATT connection in registration order.
func (r *Registry) Gatts() []*BluetoothGatt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*BluetoothGatt, 0, r.gatts.Len())
	for pair := r.gatts.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value.gatt)
	}
	return result
}

// DeviceFor resolves the device that opened the GATT connection handle.
func (r *Registry) DeviceFor(handle GattHandle) (*BluetoothDevice, bool) {
	r.mu.RLock()
	entry, ok := r.gatts.Get(handle)
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.devices.Get(entry.address)
}

// SetServiceProvider installs the resolver used by BluetoothDevice.AdapterService.
func (r *Registry) SetServiceProvider(provider ServiceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider = provider
}

func (r *Registry) serviceProvider() ServiceProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.provider
}

func (r *Registry) registerGatt(address string, callback GattCallback, opts connectOptions) *BluetoothGatt {
	gatt := &BluetoothGatt{
		handle:      GattHandle(uuid.New()),
		registry:    r,
		callback:    callback,
		autoConnect: opts.autoConnect,
		transport:   opts.transport,
		phy:         opts.phy,
		state:       StateDisconnected,
	}

	r.mu.Lock()
	r.gatts.Set(gatt.handle, gattEntry{gatt: gatt, address: address})
	r.mu.Unlock()

	return gatt
}
