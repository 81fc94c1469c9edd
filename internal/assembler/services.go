package assembler

// handleOptionalServices records the service selections. The toggles
// change the pricing add-on math, not the document structure; the
// template carries no dedicated service sections to add or remove, so
// this pass is informational.
func (a *Assembler) handleOptionalServices(services ServiceSelection) {
	if services.Compliance {
		a.log.Info("including compliance services")
	} else {
		a.log.Info("excluding compliance services")
	}
	if services.SecurityPlus {
		a.log.Info("including security plus services")
	} else {
		a.log.Info("excluding security plus services")
	}
}
