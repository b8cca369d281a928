package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/employee"
)

type heldLocksKey struct{}

type heldLocks struct {
	mu []*sync.Mutex
}

// rowLockTx releases the row locks taken by fakeAttendanceRepo's locking
// reads when fn returns, the way a database transaction would.
type rowLockTx struct{}

func (rowLockTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(heldLocksKey{}).(*heldLocks); ok {
		return fn(ctx)
	}

	held := &heldLocks{}
	defer func() {
		for _, m := range held.mu {
			m.Unlock()
		}
	}()
	return fn(context.WithValue(ctx, heldLocksKey{}, held))
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f fakeEmployees) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f[id]
	return ok, nil
}

type fakeAttendanceRepo struct {
	mu       sync.Mutex
	seq      int
	records  map[string]attendance.Attendance
	rowLocks map[string]*sync.Mutex
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records:  make(map[string]attendance.Attendance),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == a.EmployeeID && sameDay(r.Date, a.Date) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == employeeID && sameDay(r.Date, date) {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	held, ok := ctx.Value(heldLocksKey{}).(*heldLocks)
	if !ok {
		return nil, fmt.Errorf("locking read outside a transaction")
	}

	key := employeeID + "/" + date.Format("2006-01-02")
	f.mu.Lock()
	m, ok := f.rowLocks[key]
	if !ok {
		m = &sync.Mutex{}
		f.rowLocks[key] = m
	}
	f.mu.Unlock()

	m.Lock()
	held.mu = append(held.mu, m)
	return f.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[a.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]attendance.Attendance, 0)
	for _, r := range f.records {
		if keep(r) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return f.filter(func(r attendance.Attendance) bool { return r.EmployeeID == employeeID }), nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return f.filter(func(r attendance.Attendance) bool { return sameDay(r.Date, date) }), nil
}

func (f *fakeAttendanceRepo) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	from, to := start.Format("2006-01-02"), end.Format("2006-01-02")
	return f.filter(func(r attendance.Attendance) bool {
		d := r.Date.Format("2006-01-02")
		return r.EmployeeID == employeeID && d >= from && d <= to
	}), nil
}
