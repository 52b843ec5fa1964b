package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
)

var _ = Describe("Updater scenarios", func() {
	var s *session

	BeforeEach(func() {
		s = newSession(testVideo(1, 0))
		_, err := s.tick()
		Expect(err).NotTo(HaveOccurred())
		s.rec.Reset()
	})

	Describe("blur level", func() {
		It("steps once per key press and reports each change", func() {
			Expect(s.tap("b")).To(Succeed())
			Expect(s.res.Filters.BlurPasses).To(Equal(2))
			Expect(s.rec.Messages()).To(Equal([]string{"Blur level: 2"}))
			Expect(s.rec.Of(events.BlurLevel)).To(Equal([]any{2}))
		})

		It("goes from zero to one with a single notification", func() {
			s.res.Filters.BlurPasses = 0
			Expect(s.tap("b")).To(Succeed())
			Expect(s.res.Filters.BlurPasses).To(Equal(1))
			Expect(s.rec.Of(events.BlurLevel)).To(Equal([]any{1}))
			Expect(s.rec.Messages()).To(Equal([]string{"Blur level: 1"}))
		})

		It("does not repeat while the key is held", func() {
			s.key("b", true)
			for i := 0; i < 5; i++ {
				_, err := s.tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.res.Filters.BlurPasses).To(Equal(2))
		})

		It("stops at zero and reports the minimum", func() {
			Expect(s.tap("v")).To(Succeed())
			Expect(s.res.Filters.BlurPasses).To(Equal(0))
			Expect(s.tap("v")).To(Succeed())
			Expect(s.res.Filters.BlurPasses).To(Equal(0))
			Expect(s.rec.Of(events.MinimumValue)).To(Equal([]any{float64(0)}))
			Expect(s.rec.Messages()).To(Equal([]string{"Blur level: 0"}))
		})
	})

	Describe("colour representation", func() {
		It("cycles through the four variants and back", func() {
			for i := 0; i < 4; i++ {
				Expect(s.tap("y")).To(Succeed())
			}
			Expect(s.res.Filters.ColorChannels).To(Equal(crt.Combined))
			Expect(s.rec.Messages()).To(Equal([]string{
				"Pixel color representation: horizontal overlapping.",
				"Pixel color representation: horizontal split.",
				"Pixel color representation: vertical split.",
				"Pixel color representation: combined.",
			}))
		})
	})

	Describe("layering", func() {
		It("derives the layer flags from the selected kind", func() {
			Expect(s.tap(",")).To(Succeed())
			Expect(s.res.Filters.LayeringKind).To(Equal(crt.SolidOnly))
			Expect(s.res.Filters.ShowingDiffuseForeground).To(BeFalse())
			Expect(s.res.Filters.SolidColorWeight).To(BeNumerically("==", 1.0))
			Expect(s.rec.Messages()).To(ContainElement("Layering kind 'Solid only' selected."))
		})

		It("ignores the hotkey while an input has focus", func() {
			s.key("input_focused", true)
			Expect(s.tap(",")).To(Succeed())
			Expect(s.res.Filters.LayeringKind).To(Equal(crt.ShadowOnly))
		})
	})

	Describe("shadow shapes", func() {
		It("wraps modulo the registry length", func() {
			for i := 0; i < len(s.res.Shadows); i++ {
				Expect(s.tap(".")).To(Succeed())
			}
			Expect(s.res.Filters.ShadowShape).To(Equal(1))
		})
	})

	Describe("session control", func() {
		It("ends the session on escape", func() {
			s.key("escape", true)
			running, err := s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeFalse())
			Expect(s.rec.Count(events.ExitingSession)).To(Equal(1))
		})

		It("toggles the info panel on space", func() {
			Expect(s.tap("space")).To(Succeed())
			Expect(s.rec.Count(events.ToggleInfoPanel)).To(Equal(1))
		})

		It("grows the pulse only while it is on", func() {
			Expect(s.tap("p")).To(Succeed())
			Expect(s.res.Filters.PixelsPulse).To(BeNumerically(">", 0))
			Expect(s.tap("p")).To(Succeed())
			Expect(s.res.Filters.PixelsPulse).To(BeNumerically("==", 0))
			Expect(s.rec.Messages()).To(Equal([]string{"Screen wave ON.", "Screen wave OFF."}))
		})
	})

	Describe("speeds", func() {
		It("doubles camera speeds without modifiers", func() {
			Expect(s.tap("f")).To(Succeed())
			Expect(s.res.Camera.TurningSpeed).To(BeNumerically("==", 2*TurningBaseSpeed))
			Expect(s.res.Camera.MovementSpeed).To(BeNumerically("==", 2*s.res.Initial.MovementSpeed))
			Expect(s.rec.Messages()).To(ContainElement("Turning camera speed: 2x"))
			Expect(s.res.FilterSpeed).To(BeNumerically("==", PixelManipulationBaseSpeed))
		})

		It("changes only the filter speed with shift", func() {
			s.key("shift", true)
			Expect(s.tap("r")).To(Succeed())
			Expect(s.res.FilterSpeed).To(BeNumerically("==", PixelManipulationBaseSpeed/2))
			Expect(s.res.Camera.TurningSpeed).To(BeNumerically("==", TurningBaseSpeed))
			Expect(s.rec.Messages()).To(Equal([]string{"Pixel manipulation speed: 0.5x"}))
		})

		It("changes nothing with alt", func() {
			s.key("alt", true)
			Expect(s.tap("f")).To(Succeed())
			Expect(s.res.Camera.TurningSpeed).To(BeNumerically("==", TurningBaseSpeed))
			Expect(s.rec.Messages()).To(BeEmpty())
		})

		It("restores every speed on reset", func() {
			Expect(s.tap("f")).To(Succeed())
			Expect(s.tap("t")).To(Succeed())
			Expect(s.res.Camera.TurningSpeed).To(BeNumerically("==", TurningBaseSpeed))
			Expect(s.res.Camera.MovementSpeed).To(BeNumerically("==", s.res.Initial.MovementSpeed))
			Expect(s.rec.Messages()).To(ContainElement("All speeds have been reset."))
		})
	})

	Describe("filter reset", func() {
		It("restores defaults and notifies only what changed", func() {
			Expect(s.tap("b")).To(Succeed())
			Expect(s.tap("o")).To(Succeed())
			s.rec.Reset()

			Expect(s.tap("reset-filters")).To(Succeed())
			Expect(s.res.Filters.BlurPasses).To(Equal(1))
			Expect(s.res.Filters.PixelsGeometryKind).To(Equal(crt.Squares))
			Expect(s.rec.Of(events.BlurLevel)).To(Equal([]any{1}))
			Expect(s.rec.Count(events.PixelGeometry)).To(Equal(1))
			Expect(s.rec.Count(events.PixelWidth)).To(BeZero())
		})
	})

	Describe("camera", func() {
		It("locks and releases the pointer around a drag", func() {
			s.key("mouse-click", true)
			_, err := s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.rec.Count(events.RequestPointerLock)).To(Equal(1))

			s.ticker.Input.MousePositionX = 50
			_, err = s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.res.Camera.Direction().X()).NotTo(BeZero())

			s.key("mouse-click", false)
			_, err = s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.rec.Count(events.ExitPointerLock)).To(Equal(1))
		})

		It("resets to the far away pose", func() {
			s.key("w", true)
			s.key("camera-zoom-inc", true)
			_, err := s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.res.Camera.Zoom).To(BeNumerically("<", 45))

			s.key("w", false)
			s.key("camera-zoom-inc", false)
			Expect(s.tap("reset-camera")).To(Succeed())
			Expect(s.res.Camera.Position().Z()).To(Equal(s.res.Initial.PositionZ))
			Expect(s.res.Camera.Zoom).To(BeNumerically("==", 45))
			Expect(s.rec.Messages()).To(ContainElement("The camera have been reset."))
		})

		It("keeps the world axes in locked mode", func() {
			Expect(s.tap("feature-camera-movement-mode")).To(Succeed())
			Expect(s.res.Camera.LockedMode).To(BeTrue())
			s.key("arrowleft", true)
			_, err := s.tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.res.Camera.Direction().X()).To(BeZero())
		})
	})
})
