package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
)

// GetAvailability expands the doctor's weekly templates for one day into
// bookable slots, minus pending and confirmed appointments and slots that
// already started.
type GetAvailability struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, loc *time.Location) *GetAvailability {
	if loc == nil {
		loc = time.UTC
	}
	return &GetAvailability{repo: repo, loc: loc, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, mapDomainError(err)
	}

	dayStart, dayEnd := domain.DayRange(in.Date, uc.loc)

	schedules, err := uc.repo.ListSchedules(ctx, in.DoctorID, domain.WeekdayName(dayStart))
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return []domain.TimeSlot{}, nil
	}

	booked, err := uc.repo.ListBookedForDoctor(
		ctx,
		in.DoctorID,
		dayStart.UTC(),
		dayEnd.UTC(),
		domain.BlockingStatuses(true),
	)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	slots := []domain.TimeSlot{}

	for _, sc := range schedules {
		startMin, err := domain.ParseHM(sc.StartTime)
		if err != nil {
			continue
		}
		endMin, err := domain.ParseHM(sc.EndTime)
		if err != nil {
			continue
		}

		step := sc.SlotMinutes
		if step <= 0 {
			step = domain.DefaultDurationMinutes
		}
		slotDuration := time.Duration(step) * time.Minute

		windowStart := dayStart.Add(time.Duration(startMin) * time.Minute)
		windowEnd := dayStart.Add(time.Duration(endMin) * time.Minute)

		for cur := windowStart; !cur.Add(slotDuration).After(windowEnd); cur = cur.Add(slotDuration) {
			slotStart := cur
			slotEnd := cur.Add(slotDuration)

			if slotStart.Before(now) {
				continue
			}

			// the doctor is busy if any booking overlaps, whatever the office
			conflict := false
			for _, ap := range booked {
				apEnd := ap.DateTime.Add(time.Duration(ap.DurationMin) * time.Minute)
				if slotStart.Before(apEnd) && slotEnd.After(ap.DateTime) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			slots = append(slots, domain.TimeSlot{
				OfficeID: sc.OfficeID,
				Start:    slotStart.Format("15:04"),
				End:      slotEnd.Format("15:04"),
				At:       slotStart.UTC(),
			})
		}
	}

	return slots, nil
}
