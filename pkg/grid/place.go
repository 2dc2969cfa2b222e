package grid

import "github.com/matzehuels/anchor/pkg/host"

// Place assigns plan frames to the subviews of container in order and
// returns how many views were placed. Placed views switch back to frame
// translation. Views beyond the plan's capacity are left untouched.
func Place(container host.View, plan Plan) int {
	views := container.Subviews()
	frames := plan.Frames(len(views))
	for i, f := range frames {
		v := views[i]
		v.SetTranslatesAutoFrame(true)
		v.SetFrame(f)
	}
	return len(frames)
}
