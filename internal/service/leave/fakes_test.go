package leave

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/google/uuid"
)

// memStore backs every fake repository. Its transactor snapshots the maps
// and restores them when fn fails, so rollbacks are observable.
type memStore struct {
	seq       int
	employees map[string]employee.Employee
	types     map[string]leave.LeaveType
	balances  map[string]leave.LeaveBalance
	leaves    map[string]leave.Leave
}

func newMemStore() *memStore {
	return &memStore{
		employees: make(map[string]employee.Employee),
		types:     make(map[string]leave.LeaveType),
		balances:  make(map[string]leave.LeaveBalance),
		leaves:    make(map[string]leave.Leave),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

type memTx struct {
	s     *memStore
	depth *int
}

func (t memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if *t.depth > 0 {
		return fn(ctx)
	}
	types, balances, leaves := maps.Clone(t.s.types), maps.Clone(t.s.balances), maps.Clone(t.s.leaves)

	*t.depth++
	err := fn(ctx)
	*t.depth--

	if err != nil {
		t.s.types, t.s.balances, t.s.leaves = types, balances, leaves
	}
	return err
}

type memEmployees struct{ s *memStore }

func (r memEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r memEmployees) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.s.employees[id]
	return ok, nil
}

type memLeaveTypes struct{ s *memStore }

func (r memLeaveTypes) nameTaken(name, exceptID string) bool {
	for _, lt := range r.s.types {
		if lt.ID != exceptID && strings.EqualFold(lt.Name, name) {
			return true
		}
	}
	return false
}

func (r memLeaveTypes) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if r.nameTaken(lt.Name, "") {
		return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
	}
	lt.ID = uuid.NewString()
	r.s.types[lt.ID] = lt
	return lt, nil
}

func (r memLeaveTypes) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := r.s.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r memLeaveTypes) sorted(keep func(leave.LeaveType) bool) []leave.LeaveType {
	result := make([]leave.LeaveType, 0)
	for _, lt := range r.s.types {
		if keep(lt) {
			result = append(result, lt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (r memLeaveTypes) List(ctx context.Context) ([]leave.LeaveType, error) {
	return r.sorted(func(leave.LeaveType) bool { return true }), nil
}

func (r memLeaveTypes) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	return r.sorted(func(lt leave.LeaveType) bool { return lt.IsActive }), nil
}

func (r memLeaveTypes) Update(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if _, ok := r.s.types[lt.ID]; !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if r.nameTaken(lt.Name, lt.ID) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
	}
	r.s.types[lt.ID] = lt
	return lt, nil
}

func (r memLeaveTypes) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	for _, b := range r.s.balances {
		if b.LeaveTypeID == id {
			return leave.ErrLeaveTypeInUse
		}
	}
	for _, l := range r.s.leaves {
		if l.LeaveTypeID == id {
			return leave.ErrLeaveTypeInUse
		}
	}
	delete(r.s.types, id)
	return nil
}

type memBalances struct{ s *memStore }

func (r memBalances) find(employeeID, leaveTypeID string, year int) (leave.LeaveBalance, bool) {
	for _, b := range r.s.balances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return b, true
		}
	}
	return leave.LeaveBalance{}, false
}

func (r memBalances) GetOrCreate(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	if existing, ok := r.find(balance.EmployeeID, balance.LeaveTypeID, balance.Year); ok {
		return existing, nil
	}
	balance.ID = r.s.nextID("balance")
	balance.RemainingDays = balance.TotalDays - balance.UsedDays - balance.PendingDays
	r.s.balances[balance.ID] = balance
	return balance, nil
}

func (r memBalances) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b, ok := r.find(employeeID, leaveTypeID, year)
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r memBalances) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return r.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
}

func (r memBalances) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	result := make([]leave.LeaveBalance, 0)
	for _, b := range r.s.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			name := r.s.types[b.LeaveTypeID].Name
			b.LeaveTypeName = &name
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return *result[i].LeaveTypeName < *result[j].LeaveTypeName })
	return result, nil
}

func (r memBalances) AddPending(ctx context.Context, id string, days int) (leave.LeaveBalance, error) {
	b, ok := r.s.balances[id]
	if !ok || b.RemainingDays < days {
		return leave.LeaveBalance{}, leave.ErrInsufficientBalance
	}
	b.PendingDays += days
	b.RemainingDays = b.TotalDays - b.UsedDays - b.PendingDays
	r.s.balances[id] = b
	return b, nil
}

func (r memBalances) UpdateCounters(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	b, ok := r.s.balances[balance.ID]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	b.UsedDays = balance.UsedDays
	b.PendingDays = balance.PendingDays
	b.RemainingDays = b.TotalDays - b.UsedDays - b.PendingDays
	r.s.balances[b.ID] = b
	return b, nil
}

type memLeaves struct{ s *memStore }

func (r memLeaves) enrich(l leave.Leave) leave.Leave {
	if emp, ok := r.s.employees[l.EmployeeID]; ok {
		l.EmployeeName, l.EmployeeCode = &emp.FullName, &emp.EmployeeCode
	}
	if lt, ok := r.s.types[l.LeaveTypeID]; ok {
		l.LeaveTypeName = &lt.Name
	}
	if l.ApprovedBy != nil {
		if ap, ok := r.s.employees[*l.ApprovedBy]; ok {
			l.ApproverName = &ap.FullName
		}
	}
	return l
}

func (r memLeaves) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	l.ID = r.s.nextID("leave")
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	r.s.leaves[l.ID] = l
	return l, nil
}

func (r memLeaves) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return r.enrich(l), nil
}

func (r memLeaves) GetForUpdate(ctx context.Context, id string) (leave.Leave, error) {
	return r.GetByID(ctx, id)
}

func (r memLeaves) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	if _, ok := r.s.leaves[l.ID]; !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	r.s.leaves[l.ID] = l
	return l, nil
}

func (r memLeaves) collect(keep func(leave.Leave) bool, less func(a, b leave.Leave) bool) []leave.Leave {
	result := make([]leave.Leave, 0)
	for _, l := range r.s.leaves {
		if keep(l) {
			result = append(result, r.enrich(l))
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func newestFromFirst(a, b leave.Leave) bool {
	if a.FromDate.Equal(b.FromDate) {
		return a.ID > b.ID
	}
	return a.FromDate.After(b.FromDate)
}

func (r memLeaves) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	return r.collect(func(l leave.Leave) bool { return l.EmployeeID == employeeID }, newestFromFirst), nil
}

func (r memLeaves) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Leave, error) {
	return r.collect(func(l leave.Leave) bool {
		return l.EmployeeID == employeeID && l.FromDate.Year() == year
	}, newestFromFirst), nil
}

func (r memLeaves) List(ctx context.Context, status *leave.Status) ([]leave.Leave, error) {
	return r.collect(func(l leave.Leave) bool {
		return status == nil || l.Status == *status
	}, func(a, b leave.Leave) bool { return a.ID > b.ID }), nil
}

func (r memLeaves) HasApprovedOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved && l.Overlaps(from, to) {
			return true, nil
		}
	}
	return false, nil
}
