package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/decentraland/thirdparty-registry/src/committee"
	"github.com/decentraland/thirdparty-registry/src/oracle"
	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/token"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	"github.com/decentraland/thirdparty-registry/src/utils/logger"
	"github.com/decentraland/thirdparty-registry/src/utils/model"
	"github.com/decentraland/thirdparty-registry/src/utils/monitoring"
	"github.com/decentraland/thirdparty-registry/src/utils/monitoring/report"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgtype"
	"github.com/sirupsen/logrus"
)

// Resolves the external contracts pointed at by the settings
type Backend interface {
	Oracle(address common.Address) (oracle.Oracle, error)
	Committee(address common.Address) (committee.Committee, error)
	Token(address common.Address) (token.Token, error)
}

// Third party registry. State changing operations are serialized and atomic:
// either every write and event of an operation is committed or none is.
type Registry struct {
	log *logrus.Entry

	mtx     sync.Mutex
	store   store.Store
	backend Backend
	domain  eth.Domain

	oracleTimeout time.Duration
	now           func() time.Time

	report    *report.RegistryReport
	listeners []func([]*model.Event)
}

func NewRegistry(store store.Store, backend Backend, domain eth.Domain) (self *Registry) {
	self = new(Registry)
	self.log = logger.NewSublogger("registry")
	self.store = store
	self.backend = backend
	self.domain = domain
	self.oracleTimeout = 10 * time.Second
	self.now = time.Now
	self.report = &report.RegistryReport{}
	return
}

// Max time of a single rate query
func (self *Registry) WithOracleTimeout(v time.Duration) *Registry {
	self.oracleTimeout = v
	return self
}

func (self *Registry) WithClock(now func() time.Time) *Registry {
	self.now = now
	return self
}

func (self *Registry) WithMonitor(monitor monitoring.Monitor) *Registry {
	self.report = monitor.GetReport().Registry
	return self
}

// Called with the events of every committed operation, in commit order
func (self *Registry) WithEventListener(f func([]*model.Event)) *Registry {
	self.listeners = append(self.listeners, f)
	return self
}

func (self *Registry) Domain() eth.Domain {
	return self.domain
}

// State of a single state changing operation
type operation struct {
	ctx       context.Context
	state     store.State
	settings  *model.Settings
	caller    common.Address
	timestamp int64

	events []*model.Event

	// Effects outside of the registry, applied after every registry write succeeded
	external []func() error

	// Run once the operation is committed
	committed []func()
}

func (self *operation) emit(name, thirdPartyId string, payload interface{}) (err error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return
	}

	event := &model.Event{
		Name:         name,
		ThirdPartyId: thirdPartyId,
		Payload:      pgtype.JSONB{Bytes: buf, Status: pgtype.Present},
		Timestamp:    self.timestamp,
	}
	err = self.state.AppendEvent(event)
	if err != nil {
		return
	}

	self.events = append(self.events, event)
	return
}

// Runs f as a single atomic operation on behalf of the caller
func (self *Registry) execute(ctx context.Context, name string, caller common.Address, f func(op *operation) error) (err error) {
	if call := staticCallFrom(ctx); call != nil {
		call.violated.Store(true)
		self.log.WithField("operation", name).Warn("State change attempted during a static call")
		return ErrStateChangeInStaticCall
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	var (
		events    []*model.Event
		committed []func()
	)
	err = self.store.Transaction(ctx, func(state store.State) (err error) {
		op := &operation{
			ctx:       ctx,
			state:     state,
			caller:    caller,
			timestamp: self.now().Unix(),
		}

		op.settings, err = state.GetSettings()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotInitialized
			}
			return
		}

		err = f(op)
		if err != nil {
			return
		}

		for _, apply := range op.external {
			err = apply()
			if err != nil {
				return
			}
		}

		events = op.events
		committed = op.committed
		return
	})
	if err != nil {
		self.onFailure(name, caller, err)
		return
	}

	for _, f := range committed {
		f()
	}
	self.onSuccess(name, caller, events)
	return
}

func (self *Registry) onSuccess(name string, caller common.Address, events []*model.Event) {
	self.report.State.OperationsSucceeded.Inc()
	self.report.State.EventsEmitted.Add(uint64(len(events)))
	self.report.State.LastOperationTimestamp.Store(self.now().Unix())
	self.log.WithField("operation", name).WithField("caller", caller.Hex()).WithField("events", len(events)).Debug("Operation committed")

	for _, listener := range self.listeners {
		listener(events)
	}
}

func (self *Registry) onFailure(name string, caller common.Address, err error) {
	self.report.State.OperationsFailed.Inc()

	log := self.log.WithField("operation", name).WithField("caller", caller.Hex()).WithError(err)

	registryErr, ok := AsError(err)
	if !ok {
		if errors.Is(err, token.ErrTransferFailed) ||
			errors.Is(err, token.ErrInsufficientAllowance) ||
			errors.Is(err, token.ErrInsufficientBalance) {
			self.report.Errors.Transfer.Inc()
			log.Info("Payment failed")
			return
		}
		self.report.Errors.Store.Inc()
		log.Error("Operation failed")
		return
	}

	switch registryErr.Kind {
	case KindAuthorization:
		self.report.Errors.Authorization.Inc()
	case KindCapacity:
		self.report.Errors.Capacity.Inc()
	case KindCryptographic:
		self.report.Errors.Signature.Inc()
	case KindExternal:
		// Counted by getRate
	default:
		self.report.Errors.Validation.Inc()
	}
	log.Debug("Operation rejected")
}

// Runs f against the committed state, or against the state of the operation
// that is querying an external contract
func (self *Registry) view(ctx context.Context, f func(state store.State) error) error {
	if call := staticCallFrom(ctx); call != nil {
		return call.view(f)
	}
	return self.store.View(ctx, f)
}

// Rate of the configured oracle. The oracle may read the registry but any
// attempt to change it fails the query.
func (self *Registry) getRate(ctx context.Context, state store.State, address common.Address) (rate *big.Int, err error) {
	defer func() {
		if err != nil {
			self.report.Errors.Oracle.Inc()
			self.log.WithError(err).WithField("oracle", address.Hex()).Warn("Failed to get rate")
			err = fmt.Errorf("%w: %w", ErrInvalidRateFromOracle, err)
		}
	}()

	source, err := self.backend.Oracle(address)
	if err != nil {
		return
	}

	call := &staticCall{state: state}
	ctx, cancel := context.WithTimeout(withStaticCall(ctx, call), self.oracleTimeout)
	defer cancel()

	type result struct {
		rate *big.Int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("oracle panicked: %v", r)}
			}
		}()
		rate, err := source.GetRate(ctx)
		done <- result{rate, err}
	}()

	select {
	case <-ctx.Done():
		call.finish()
		return nil, ctx.Err()
	case res := <-done:
		if call.finish() {
			return nil, ErrStateChangeInStaticCall
		}
		if res.err != nil {
			return nil, res.err
		}
		if res.rate == nil || res.rate.Sign() <= 0 {
			return nil, oracle.ErrInvalidRate
		}
		return res.rate, nil
	}
}
