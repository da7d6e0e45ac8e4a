//go:build unit

package commands_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra/memstore"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/shared"
	"wheelshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	commands commands.ReservationCommands

	owner    reservation.Actor
	renter   reservation.Actor
	mechanic reservation.Actor
	admin    reservation.Actor
	vehicle  *resource.Resource
	service  *resource.Resource
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(builder.Now)

	s.owner = s.seedUser("owner@example.com", "Olga", user.RoleCarOwner)
	s.renter = s.seedUser("renter@example.com", "Ravi", user.RoleRenter)
	s.mechanic = s.seedUser("mechanic@example.com", "Mina", user.RoleMechanic)
	s.admin = s.seedUser("admin@example.com", "Ada", user.RoleAdmin)

	s.vehicle = builder.NewResourceBuilder().WithOwner(s.owner.ID, s.owner.Role).WithUnitPrice(6500).BuildStored()
	s.service = builder.NewResourceBuilder().AsMechanicService().WithOwner(s.mechanic.ID, s.mechanic.Role).BuildStored()
	s.store.PutResource(s.vehicle)
	s.store.PutResource(s.service)

	factory := reservation.NewFactory(s.clock, reservation.NewDailyRateCalculator(), reservation.NewQuoteOnAcceptCalculator())
	s.commands = commands.NewReservationCommands(
		s.store,
		s.store.ReservationReads(),
		factory,
		s.clock,
		config.ReservationConfig{LateCancelWindow: 24 * time.Hour, DefaultListLimit: 20},
	)
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) seedUser(email, name string, role user.Role) reservation.Actor {
	u := builder.NewUserBuilder().WithEmail(email).WithName(name).WithRole(role.String()).BuildStored()
	s.store.PutUser(u)
	return reservation.Actor{ID: u.ID(), Role: u.Role()}
}

func (s *ReservationCommandsTestSuite) book(start, end time.Time) (uuid.UUID, error) {
	view, err := s.commands.CreateReservation(s.ctx, s.renter, commands.CreateReservationInput{
		ResourceID: s.vehicle.ID(),
		Start:      start,
		End:        end,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return view.ID, nil
}

func (s *ReservationCommandsTestSuite) setStatus(actor reservation.Actor, id uuid.UUID, status string) error {
	_, err := s.commands.UpdateStatus(s.ctx, actor, id, commands.UpdateStatusInput{Status: status})
	return err
}

func (s *ReservationCommandsTestSuite) TestBookingLifecycle() {
	s.Run("正常系: 作成から完了まで進み、完了時だけ実績が加算される", func() {
		view, err := s.commands.CreateReservation(s.ctx, s.renter, commands.CreateReservationInput{
			ResourceID: s.vehicle.ID(),
			Start:      builder.April(1),
			End:        builder.April(4),
			Notes:      "Airport pickup",
		})
		s.Require().NoError(err)
		s.Equal(int64(19500), view.TotalAmountCents)
		s.Equal(reservation.StatusPending, view.Status)
		s.Equal(s.owner.ID, view.ProviderID)
		s.Equal("Ravi", view.RequesterName)
		s.Equal("Olga", view.ProviderName)

		approved, err := s.commands.UpdateStatus(s.ctx, s.owner, view.ID, commands.UpdateStatusInput{Status: "approved"})
		s.Require().NoError(err)
		s.Equal(reservation.StatusApproved, approved.Status)
		s.Equal(int64(0), s.store.Resource(s.vehicle.ID()).TotalRentals())

		completed, err := s.commands.UpdateStatus(s.ctx, s.owner, view.ID, commands.UpdateStatusInput{Status: "completed"})
		s.Require().NoError(err)
		s.Equal(reservation.StatusCompleted, completed.Status)

		stored := s.store.Resource(s.vehicle.ID())
		s.Equal(int64(1), stored.TotalRentals())
		s.Equal(int64(19500), stored.TotalEarningsCents())

		err = s.setStatus(s.owner, view.ID, "completed")
		s.True(errs.Is(err, reservation.ErrAlreadyFinalized))
		s.True(errs.Is(errs.KindOf(err), errs.ErrValidation))

		stored = s.store.Resource(s.vehicle.ID())
		s.Equal(int64(1), stored.TotalRentals())
		s.Equal(int64(19500), stored.TotalEarningsCents())
	})

	s.Run("正常系: 作成と各遷移ごとにアウトボックスへイベントが積まれる", func() {
		before := len(s.store.Events())
		ctx := shared.WithCorrelationID(s.ctx, "req-42")

		view, err := s.commands.CreateReservation(ctx, s.renter, commands.CreateReservationInput{
			ResourceID: s.vehicle.ID(),
			Start:      builder.April(20),
			End:        builder.April(21),
		})
		s.Require().NoError(err)
		_, err = s.commands.UpdateStatus(ctx, s.owner, view.ID, commands.UpdateStatusInput{Status: "declined"})
		s.Require().NoError(err)

		events := s.store.Events()[before:]
		s.Require().Len(events, 2)
		s.Equal(shared.EventReservationCreated, events[0].EventType)
		s.Equal(shared.EventReservationStatusChanged, events[1].EventType)
		for _, e := range events {
			s.Equal(view.ID, e.AggregateID)
			s.Equal("req-42", e.CorrelationID)
		}
		s.Contains(string(events[1].Payload), `"previousStatus":"pending"`)
		s.Contains(string(events[1].Payload), `"status":"declined"`)
	})
}

func (s *ReservationCommandsTestSuite) TestAvailability() {
	s.Run("異常系: 重なる期間は拒否され、日付が重ならなければ予約できる", func() {
		_, err := s.book(builder.April(1), builder.April(3))
		s.Require().NoError(err)

		_, err = s.book(builder.April(2), builder.April(5))
		s.True(errs.Is(err, reservation.ErrRangeUnavailable))
		s.True(errs.Is(errs.KindOf(err), errs.ErrAvailability))

		_, err = s.book(builder.April(4), builder.April(6))
		s.NoError(err)
		s.Equal(2, s.store.ReservationCount(s.vehicle.ID()))
	})

	s.Run("異常系: 終了日と開始日が同じ日なら重複とみなす", func() {
		_, err := s.book(builder.April(10), builder.April(12))
		s.Require().NoError(err)

		_, err = s.book(builder.April(12), builder.April(14))
		s.True(errs.Is(err, reservation.ErrRangeUnavailable))
	})

	s.Run("正常系: 辞退済みの予約は期間を塞がない", func() {
		id, err := s.book(builder.April(15), builder.April(17))
		s.Require().NoError(err)
		s.Require().NoError(s.setStatus(s.owner, id, "declined"))

		_, err = s.book(builder.April(15), builder.April(17))
		s.NoError(err)
	})

	s.Run("異常系: 受付停止中のリソースは予約できない", func() {
		closed := builder.NewResourceBuilder().WithOwner(s.owner.ID, s.owner.Role).AsUnavailable().BuildStored()
		s.store.PutResource(closed)

		_, err := s.commands.CreateReservation(s.ctx, s.renter, commands.CreateReservationInput{
			ResourceID: closed.ID(),
			Start:      builder.April(1),
			End:        builder.April(2),
		})
		s.True(errs.Is(err, reservation.ErrResourceUnavailable))
	})

	s.Run("異常系: 失敗した作成はイベントも予約も残さない", func() {
		before := len(s.store.Events())
		count := s.store.ReservationCount(s.vehicle.ID())

		_, err := s.book(builder.April(1), builder.April(2))
		s.Require().Error(err)

		s.Len(s.store.Events(), before)
		s.Equal(count, s.store.ReservationCount(s.vehicle.ID()))
	})
}

func (s *ReservationCommandsTestSuite) TestConcurrentBookings() {
	s.Run("正常系: 同じ期間への同時予約は1件だけ成功する", func() {
		const attempts = 16
		var succeeded, rejected atomic.Int32

		var g errgroup.Group
		for range attempts {
			g.Go(func() error {
				_, err := s.book(builder.April(7), builder.April(9))
				switch {
				case err == nil:
					succeeded.Add(1)
				case errs.Is(err, reservation.ErrRangeUnavailable):
					rejected.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		s.Require().NoError(g.Wait())

		s.Equal(int32(1), succeeded.Load())
		s.Equal(int32(attempts-1), rejected.Load())
	})
}

func (s *ReservationCommandsTestSuite) TestCreateValidation() {
	kindMechanic := resource.KindMechanic

	tests := []struct {
		name    string
		actor   func() reservation.Actor
		input   func() commands.CreateReservationInput
		wantErr error
	}{
		{
			name:  "異常系: 車両オーナーは車両を予約できない",
			actor: func() reservation.Actor { return s.owner },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{ResourceID: s.vehicle.ID(), Start: builder.April(1), End: builder.April(2)}
			},
			wantErr: reservation.ErrVehicleRequesterRole,
		},
		{
			name:  "異常系: 整備士は整備を依頼できない",
			actor: func() reservation.Actor { return s.mechanic },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{
					ResourceID: s.service.ID(),
					Start:      builder.April(1).Add(9 * time.Hour),
					End:        builder.April(1).Add(11 * time.Hour),
					Service:    &commands.ServiceInput{VehicleType: "sedan", ServiceType: "oil change"},
				}
			},
			wantErr: reservation.ErrMechanicRequesterRole,
		},
		{
			name:  "異常系: 開始が過去",
			actor: func() reservation.Actor { return s.renter },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{ResourceID: s.vehicle.ID(), Start: builder.Now.Add(-time.Hour), End: builder.April(2)}
			},
			wantErr: reservation.ErrStartInPast,
		},
		{
			name:  "異常系: 開始が終了より後",
			actor: func() reservation.Actor { return s.renter },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{ResourceID: s.vehicle.ID(), Start: builder.April(5), End: builder.April(2)}
			},
			wantErr: reservation.ErrInvalidTimeSlot,
		},
		{
			name:  "異常系: 存在しないリソース",
			actor: func() reservation.Actor { return s.renter },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{ResourceID: uuid.New(), Start: builder.April(1), End: builder.April(2)}
			},
			wantErr: resource.ErrResourceNotFound,
		},
		{
			name:  "異常系: 整備依頼の窓口に車両を指定",
			actor: func() reservation.Actor { return s.renter },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{
					ResourceID:   s.vehicle.ID(),
					ExpectedKind: &kindMechanic,
					Start:        builder.April(1),
					End:          builder.April(2),
				}
			},
			wantErr: commands.ErrKindMismatch,
		},
		{
			name:  "異常系: 整備依頼に作業内容がない",
			actor: func() reservation.Actor { return s.renter },
			input: func() commands.CreateReservationInput {
				return commands.CreateReservationInput{
					ResourceID: s.service.ID(),
					Start:      builder.April(1).Add(9 * time.Hour),
					End:        builder.April(1).Add(11 * time.Hour),
				}
			},
			wantErr: reservation.ErrServiceDetailsRequired,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			view, err := s.commands.CreateReservation(s.ctx, tt.actor(), tt.input())
			s.Nil(view)
			s.True(errs.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestServiceRequest() {
	s.Run("正常系: 見積もり金額は承諾時に確定し、ラベルはaccepted", func() {
		view, err := s.commands.CreateReservation(s.ctx, s.owner, commands.CreateReservationInput{
			ResourceID: s.service.ID(),
			Start:      builder.April(2).Add(9 * time.Hour),
			End:        builder.April(2).Add(11 * time.Hour),
			Service:    &commands.ServiceInput{VehicleType: "sedan", ServiceType: "brake inspection", Location: "Main St garage"},
		})
		s.Require().NoError(err)
		s.Equal(int64(0), view.TotalAmountCents)
		s.Require().NotNil(view.Service)
		s.Equal("brake inspection", view.Service.ServiceType)

		quote := int64(12000)
		accepted, err := s.commands.UpdateStatus(s.ctx, s.mechanic, view.ID, commands.UpdateStatusInput{
			Status:      "accepted",
			AmountCents: &quote,
		})
		s.Require().NoError(err)
		s.Equal(reservation.StatusApproved, accepted.Status)
		s.Equal("accepted", accepted.StatusLabel())
		s.Equal(quote, accepted.TotalAmountCents)

		_, err = s.commands.UpdateStatus(s.ctx, s.mechanic, view.ID, commands.UpdateStatusInput{Status: "completed"})
		s.Require().NoError(err)
		stored := s.store.Resource(s.service.ID())
		s.Equal(int64(1), stored.TotalRentals())
		s.Equal(quote, stored.TotalEarningsCents())

		events := s.store.Events()
		last := string(events[len(events)-1].Payload)
		s.Contains(last, `"previousStatus":"accepted"`)
		s.Contains(last, `"status":"completed"`)
	})

	s.Run("正常系: 時間単価方式は作成時に開始済み時間で計算し、承諾時の金額で上書きできる", func() {
		hourly := commands.NewReservationCommands(
			s.store,
			s.store.ReservationReads(),
			reservation.NewFactory(s.clock, reservation.NewDailyRateCalculator(), reservation.NewHourlyRateCalculator()),
			s.clock,
			config.ReservationConfig{LateCancelWindow: 24 * time.Hour, DefaultListLimit: 20},
		)
		request := func(from, length time.Duration) commands.CreateReservationInput {
			start := builder.April(5).Add(from)
			return commands.CreateReservationInput{
				ResourceID: s.service.ID(),
				Start:      start,
				End:        start.Add(length),
				Service:    &commands.ServiceInput{VehicleType: "sedan", ServiceType: "oil change"},
			}
		}

		// 2.5h at 4000/h is three started hours
		kept, err := hourly.CreateReservation(s.ctx, s.renter, request(9*time.Hour, 150*time.Minute))
		s.Require().NoError(err)
		s.Equal(int64(12000), kept.TotalAmountCents)

		accepted, err := hourly.UpdateStatus(s.ctx, s.mechanic, kept.ID, commands.UpdateStatusInput{Status: "accepted"})
		s.Require().NoError(err)
		s.Equal(int64(12000), accepted.TotalAmountCents)

		overridden, err := hourly.CreateReservation(s.ctx, s.renter, request(14*time.Hour, time.Hour))
		s.Require().NoError(err)
		s.Equal(int64(4000), overridden.TotalAmountCents)

		quote := int64(9000)
		accepted, err = hourly.UpdateStatus(s.ctx, s.mechanic, overridden.ID, commands.UpdateStatusInput{
			Status:      "accepted",
			AmountCents: &quote,
		})
		s.Require().NoError(err)
		s.Equal(quote, accepted.TotalAmountCents)
	})

	s.Run("正常系: 同じ日でも時間が重ならなければ受け付ける", func() {
		request := func(from, to int) error {
			_, err := s.commands.CreateReservation(s.ctx, s.renter, commands.CreateReservationInput{
				ResourceID: s.service.ID(),
				Start:      builder.April(3).Add(time.Duration(from) * time.Hour),
				End:        builder.April(3).Add(time.Duration(to) * time.Hour),
				Service:    &commands.ServiceInput{VehicleType: "suv", ServiceType: "tire rotation"},
			})
			return err
		}
		s.Require().NoError(request(9, 11))
		s.NoError(request(13, 14))
		s.True(errs.Is(request(10, 12), reservation.ErrRangeUnavailable))
	})
}

func (s *ReservationCommandsTestSuite) TestTransitionAuthorization() {
	tests := []struct {
		name    string
		actor   func() reservation.Actor
		status  string
		wantErr error
	}{
		{"異常系: 依頼者は承認できない", func() reservation.Actor { return s.renter }, "approved", reservation.ErrProviderDecision},
		{"異常系: 依頼者は辞退させられない", func() reservation.Actor { return s.renter }, "declined", reservation.ErrProviderDecision},
		{"異常系: 提供者はキャンセルできない", func() reservation.Actor { return s.owner }, "cancelled", reservation.ErrRequesterCancel},
		{"異常系: 依頼者は完了にできない", func() reservation.Actor { return s.renter }, "completed", reservation.ErrProviderCompletion},
		{"異常系: 無関係の整備士は承認できない", func() reservation.Actor { return s.mechanic }, "approved", reservation.ErrProviderDecision},
		{"異常系: pendingへは戻せない", func() reservation.Actor { return s.owner }, "pending", reservation.ErrUnsupportedTarget},
		{"異常系: 未知のステータス", func() reservation.Actor { return s.owner }, "shipped", reservation.ErrInvalidStatus},
		{"異常系: 承認前に完了", func() reservation.Actor { return s.owner }, "completed", reservation.ErrIllegalTransition},
	}

	for i, tt := range tests {
		s.Run(tt.name, func() {
			day := builder.April(1).AddDate(0, 0, i*2)
			id, err := s.book(day, day.AddDate(0, 0, 1))
			s.Require().NoError(err)

			err = s.setStatus(tt.actor(), id, tt.status)
			s.True(errs.Is(err, tt.wantErr), "got %v", err)

			view, err := s.store.ReservationReads().FindByID(s.ctx, id)
			s.Require().NoError(err)
			s.Equal(reservation.StatusPending, view.Status)
		})
	}

	s.Run("正常系: 管理者は当事者でなくても承認できる", func() {
		id, err := s.book(builder.April(25), builder.April(26))
		s.Require().NoError(err)
		s.NoError(s.setStatus(s.admin, id, "approved"))
	})

	s.Run("異常系: 存在しない予約", func() {
		err := s.setStatus(s.owner, uuid.New(), "approved")
		s.True(errs.Is(err, reservation.ErrReservationNotFound))
	})
}

func (s *ReservationCommandsTestSuite) TestLateCancellation() {
	s.Run("異常系: 承認済みで開始まで24時間を切るとキャンセルできない", func() {
		id, err := s.book(builder.April(1), builder.April(2))
		s.Require().NoError(err)
		s.Require().NoError(s.setStatus(s.owner, id, "approved"))

		s.clock.Set(builder.April(1).Add(-23 * time.Hour))
		err = s.setStatus(s.renter, id, "cancelled")
		s.True(errs.Is(err, reservation.ErrLateCancellation))
		s.True(errs.Is(errs.KindOf(err), errs.ErrTiming))
	})

	s.Run("正常系: ちょうど24時間前ならキャンセルできる", func() {
		s.clock.Set(builder.Now)
		id, err := s.book(builder.April(10), builder.April(11))
		s.Require().NoError(err)
		s.Require().NoError(s.setStatus(s.owner, id, "approved"))

		s.clock.Set(builder.April(10).Add(-24 * time.Hour))
		s.NoError(s.setStatus(s.renter, id, "cancelled"))
	})

	s.Run("正常系: 承認前なら直前でもキャンセルできる", func() {
		s.clock.Set(builder.Now)
		id, err := s.book(builder.April(20), builder.April(21))
		s.Require().NoError(err)

		s.clock.Set(builder.April(20).Add(-time.Hour))
		s.NoError(s.setStatus(s.renter, id, "cancelled"))
	})
}
