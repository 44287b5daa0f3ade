package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, ministryID string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if ministryID != "" && (u.MinistryID == nil || *u.MinistryID != ministryID) {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock MinistryRepository ──

type mockMinistryRepo struct {
	ministries map[string]*model.Ministry
	seq        int
}

func newMockMinistryRepo() *mockMinistryRepo {
	return &mockMinistryRepo{ministries: make(map[string]*model.Ministry)}
}

func (m *mockMinistryRepo) Create(_ context.Context, ministry *model.Ministry) error {
	if ministry.MinistryID == "" {
		m.seq++
		ministry.MinistryID = fmt.Sprintf("ministry-%d", m.seq)
	}
	m.ministries[ministry.MinistryID] = ministry
	return nil
}

func (m *mockMinistryRepo) GetByID(_ context.Context, id string) (*model.Ministry, error) {
	if mi, ok := m.ministries[id]; ok {
		copied := *mi
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMinistryRepo) List(_ context.Context) ([]model.Ministry, error) {
	var result []model.Ministry
	for _, mi := range m.ministries {
		result = append(result, *mi)
	}
	return result, nil
}

func (m *mockMinistryRepo) ListByMaster(_ context.Context, masterMinistryID string) ([]model.Ministry, error) {
	var result []model.Ministry
	for _, mi := range m.ministries {
		if mi.MinistryID == masterMinistryID ||
			(mi.MasterMinistryID != nil && *mi.MasterMinistryID == masterMinistryID) {
			result = append(result, *mi)
		}
	}
	return result, nil
}

func (m *mockMinistryRepo) Update(_ context.Context, ministry *model.Ministry) error {
	m.ministries[ministry.MinistryID] = ministry
	return nil
}

func (m *mockMinistryRepo) Delete(_ context.Context, id string) error {
	delete(m.ministries, id)
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.Group
	seq    int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		m.seq++
		group.GroupID = fmt.Sprintf("group-%d", m.seq)
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, ministryIDs []string) ([]model.Group, error) {
	allowed := make(map[string]bool, len(ministryIDs))
	for _, id := range ministryIDs {
		allowed[id] = true
	}
	var result []model.Group
	for _, g := range m.groups {
		if len(ministryIDs) > 0 && !allowed[g.MinistryID] {
			continue
		}
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGroupRepo) ListWithSchedule(_ context.Context) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if g.MeetingFrequency != nil && g.MeetingDay != nil && g.MeetingTime != nil && g.MeetingStartDate != nil {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock MeetingRepository ──

type mockMeetingRepo struct {
	meetings map[string]*model.Meeting
	groups   *mockGroupRepo
	seq      int

	// failBatchUpdates makes the next N UpdateStatusBatch calls fail.
	failBatchUpdates int
	batchCalls       int
	failListDatesFor map[string]bool
}

func newMockMeetingRepo(groups *mockGroupRepo) *mockMeetingRepo {
	return &mockMeetingRepo{
		meetings:         make(map[string]*model.Meeting),
		groups:           groups,
		failListDatesFor: make(map[string]bool),
	}
}

func (m *mockMeetingRepo) Create(_ context.Context, meeting *model.Meeting) error {
	for _, existing := range m.meetings {
		if existing.GroupID == meeting.GroupID && existing.Date.Equal(meeting.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if meeting.MeetingID == "" {
		m.seq++
		meeting.MeetingID = fmt.Sprintf("meeting-%d", m.seq)
	}
	copied := *meeting
	m.meetings[meeting.MeetingID] = &copied
	return nil
}

func (m *mockMeetingRepo) CreateBatch(ctx context.Context, meetings []model.Meeting) error {
	for i := range meetings {
		if err := m.Create(ctx, &meetings[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockMeetingRepo) GetByID(_ context.Context, id string) (*model.Meeting, error) {
	mt, ok := m.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *mt
	if m.groups != nil {
		if g, ok := m.groups.groups[mt.GroupID]; ok {
			groupCopy := *g
			copied.Group = &groupCopy
		}
	}
	return &copied, nil
}

func (m *mockMeetingRepo) ListByGroup(_ context.Context, groupID string, from, to *time.Time) ([]model.Meeting, error) {
	var result []model.Meeting
	for _, mt := range m.meetings {
		if mt.GroupID != groupID {
			continue
		}
		if from != nil && mt.Date.Before(*from) {
			continue
		}
		if to != nil && mt.Date.After(*to) {
			continue
		}
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockMeetingRepo) ListDatesByGroup(_ context.Context, groupID string) ([]time.Time, error) {
	if m.failListDatesFor[groupID] {
		return nil, errors.New("simulated read failure")
	}
	var dates []time.Time
	for _, mt := range m.meetings {
		if mt.GroupID == groupID {
			dates = append(dates, mt.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (m *mockMeetingRepo) Update(_ context.Context, meeting *model.Meeting) error {
	copied := *meeting
	m.meetings[meeting.MeetingID] = &copied
	return nil
}

func (m *mockMeetingRepo) UpdateStatus(_ context.Context, id, status string) error {
	mt, ok := m.meetings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mt.Status = status
	return nil
}

func (m *mockMeetingRepo) UpdateStatusBatch(_ context.Context, updates []repository.MeetingStatusUpdate) error {
	m.batchCalls++
	if m.failBatchUpdates > 0 {
		m.failBatchUpdates--
		return errors.New("simulated write failure")
	}
	for _, u := range updates {
		if mt, ok := m.meetings[u.MeetingID]; ok {
			mt.Status = u.Status
		}
	}
	return nil
}

func (m *mockMeetingRepo) Delete(_ context.Context, id string) error {
	delete(m.meetings, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	attendances map[string][]model.Attendance // by meeting ID
	seq         int

	failPresent bool
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{attendances: make(map[string][]model.Attendance)}
}

func (m *mockAttendanceRepo) ListByMeeting(_ context.Context, meetingID string) ([]model.Attendance, error) {
	return append([]model.Attendance(nil), m.attendances[meetingID]...), nil
}

func (m *mockAttendanceRepo) ListByMeetings(_ context.Context, meetingIDs []string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range meetingIDs {
		result = append(result, m.attendances[id]...)
	}
	return result, nil
}

func (m *mockAttendanceRepo) PresentMeetingIDs(_ context.Context, meetingIDs []string) (map[string]bool, error) {
	if m.failPresent {
		return nil, errors.New("simulated read failure")
	}
	result := make(map[string]bool)
	for _, id := range meetingIDs {
		for _, a := range m.attendances[id] {
			if a.Present {
				result[id] = true
				break
			}
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ReplaceForMeeting(_ context.Context, meetingID string, attendances []model.Attendance) error {
	for i := range attendances {
		if attendances[i].AttendanceID == "" {
			m.seq++
			attendances[i].AttendanceID = fmt.Sprintf("attendance-%d", m.seq)
		}
	}
	m.attendances[meetingID] = append([]model.Attendance(nil), attendances...)
	return nil
}

// ── Mock LedgerRepository ──

type mockLedgerRepo struct {
	entries map[string]*model.LedgerEntry
	seq     int
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{entries: make(map[string]*model.LedgerEntry)}
}

func (m *mockLedgerRepo) Create(_ context.Context, entry *model.LedgerEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockLedgerRepo) GetByID(_ context.Context, id string) (*model.LedgerEntry, error) {
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLedgerRepo) ListByGroup(_ context.Context, groupID string, offset, limit int) ([]model.LedgerEntry, int64, error) {
	var result []model.LedgerEntry
	for _, e := range m.entries {
		if e.GroupID == groupID {
			result = append(result, *e)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockLedgerRepo) Totals(_ context.Context, groupID string) (*repository.LedgerTotals, error) {
	totals := &repository.LedgerTotals{}
	for _, e := range m.entries {
		if e.GroupID != groupID {
			continue
		}
		switch e.Kind {
		case model.LedgerKindIncome:
			totals.IncomeCents += e.AmountCents
		case model.LedgerKindExpense:
			totals.ExpenseCents += e.AmountCents
		}
	}
	return totals, nil
}

func (m *mockLedgerRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	seq    int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("event-%d", m.seq)
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) ListByMinistries(_ context.Context, ministryIDs []string) ([]model.Event, error) {
	allowed := make(map[string]bool, len(ministryIDs))
	for _, id := range ministryIDs {
		allowed[id] = true
	}
	var result []model.Event
	for _, e := range m.events {
		if len(ministryIDs) > 0 && !allowed[e.MinistryID] {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityRepo struct {
	entries []model.ActivityLog
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityRepo) List(_ context.Context, entity string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var result []model.ActivityLog
	for _, e := range m.entries {
		if entity != "" && e.Entity != entity {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

// ── Test fixture assembly ──

type testRepos struct {
	users       *mockUserRepo
	ministries  *mockMinistryRepo
	groups      *mockGroupRepo
	meetings    *mockMeetingRepo
	attendances *mockAttendanceRepo
	ledger      *mockLedgerRepo
	events      *mockEventRepo
	activity    *mockActivityRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	groups := newMockGroupRepo()
	mocks := &testRepos{
		users:       newMockUserRepo(),
		ministries:  newMockMinistryRepo(),
		groups:      groups,
		meetings:    newMockMeetingRepo(groups),
		attendances: newMockAttendanceRepo(),
		ledger:      newMockLedgerRepo(),
		events:      newMockEventRepo(),
		activity:    newMockActivityRepo(),
	}
	repo := &repository.Repository{
		User:       mocks.users,
		Ministry:   mocks.ministries,
		Group:      mocks.groups,
		Meeting:    mocks.meetings,
		Attendance: mocks.attendances,
		Ledger:     mocks.ledger,
		Event:      mocks.events,
		Activity:   mocks.activity,
	}
	return repo, mocks
}
