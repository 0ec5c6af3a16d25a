package plate

// findRiverSources collects every cell that can start a river: it holds at
// least lowerBound crust and every neighbour is strictly lower. Plate-edge
// cells never qualify because calculateCrust reports zero crust outside
// the plate.
func (p *Plate) findRiverSources(lowerBound float32, sources []uint32) []uint32 {
	width, height := p.bounds.Width(), p.bounds.Height()
	m := p.height.Data()

	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			index := y*width + x
			if m[index] < lowerBound {
				continue
			}

			wCrust, eCrust, nCrust, sCrust, _, _, _, _ :=
				calculateCrust(x, y, index, m, width, height, p.world)

			// Either at the edge of the plate or not the tallest of its
			// neighbourhood. No river starts here.
			if wCrust*eCrust*nCrust*sCrust == 0 {
				continue
			}

			sources = append(sources, index)
		}
	}
	return sources
}

// flowRivers walks water from every source down the steepest slope,
// eroding 20% of each visited cell's excess above lowerBound into tmp.
// Sources and sinks are double buffered; the done bitmap admits every
// cell at most once per call.
func (p *Plate) flowRivers(lowerBound float32, sources []uint32, tmp []float32) {
	width, height := p.bounds.Width(), p.bounds.Height()
	m := p.height.Data()
	done := make([]bool, p.bounds.Area())
	var sinks []uint32

	for len(sources) > 0 {
		for _, index := range sources {
			if m[index] < lowerBound {
				continue
			}

			x, y := index%width, index/width
			wCrust, eCrust, nCrust, sCrust, w, e, n, s :=
				calculateCrust(x, y, index, m, width, height, p.world)

			// Lowest part of its neighbourhood: the river ends.
			if wCrust+eCrust+nCrust+sCrust == 0 {
				continue
			}

			// Non-lower neighbours compare as the cell itself so the
			// minimum search below never picks them.
			if wCrust == 0 {
				wCrust = m[index]
			}
			if eCrust == 0 {
				eCrust = m[index]
			}
			if nCrust == 0 {
				nCrust = m[index]
			}
			if sCrust == 0 {
				sCrust = m[index]
			}

			lowest := wCrust
			dest := w
			if eCrust < lowest {
				lowest = eCrust
				dest = e
			}
			if nCrust < lowest {
				lowest = nCrust
				dest = n
			}
			if sCrust < lowest {
				lowest = sCrust
				dest = s
			}

			if !done[dest] {
				sinks = append(sinks, dest)
				done[dest] = true
			}

			tmp[index] -= (tmp[index] - lowerBound) * 0.2
		}

		sources, sinks = sinks, sources[:0]
	}
}

// Erode performs one step of hydraulic erosion: river flow from the
// peaks, a light multiplicative noise pass, then a flow-based
// redistribution of crust toward lower neighbours. The mass tracker is
// rebuilt from scratch at the end.
func (p *Plate) Erode(lowerBound float32) {
	width, height := p.bounds.Width(), p.bounds.Height()
	area := p.bounds.Area()

	tmp := make([]float32, area)
	copy(tmp, p.height.Data())

	sources := p.findRiverSources(lowerBound, nil)
	p.flowRivers(lowerBound, sources, tmp)

	// Add random noise (10%) to the heightmap.
	for i := uint32(0); i < area; i++ {
		alpha := 0.2 * float32(p.rng.NextFloat64())
		tmp[i] += 0.1*tmp[i] - alpha*tmp[i]
	}

	p.height.reset(width, height, tmp)
	m := p.height.Data()
	tmp = make([]float32, area)

	var mb MassBuilder
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			index := y*width + x
			mb.AddPoint(x, y, m[index])
			// Careful not to overwrite amounts spread here earlier.
			tmp[index] += m[index]

			if m[index] < lowerBound {
				continue
			}

			wCrust, eCrust, nCrust, sCrust, w, e, n, s :=
				calculateCrust(x, y, index, m, width, height, p.world)

			// No lower neighbour with crust: nothing flows out of here.
			if wCrust+eCrust+nCrust+sCrust == 0 {
				continue
			}

			// Height differences toward the lower neighbours only.
			wDiff := m[index] - wCrust
			eDiff := m[index] - eCrust
			nDiff := m[index] - nCrust
			sDiff := m[index] - sCrust

			minDiff := wDiff
			if eDiff < minDiff {
				minDiff = eDiff
			}
			if nDiff < minDiff {
				minDiff = nDiff
			}
			if sDiff < minDiff {
				minDiff = sDiff
			}

			// Sum of differences between the lower neighbours and the
			// tallest lower neighbour.
			var diffSum float32
			if wCrust > 0 {
				diffSum += wDiff - minDiff
			}
			if eCrust > 0 {
				diffSum += eDiff - minDiff
			}
			if nCrust > 0 {
				diffSum += nDiff - minDiff
			}
			if sCrust > 0 {
				diffSum += sDiff - minDiff
			}

			if diffSum < -1e-6 {
				panic("erosion difference sum is negative")
			}

			if diffSum < minDiff {
				// Not enough room in the neighbours to hold all the crust
				// from this peak at the height of its tallest lower
				// neighbour: level them all with this point.
				if wCrust > 0 {
					tmp[w] += wDiff - minDiff
				}
				if eCrust > 0 {
					tmp[e] += eDiff - minDiff
				}
				if nCrust > 0 {
					tmp[n] += nDiff - minDiff
				}
				if sCrust > 0 {
					tmp[s] += sDiff - minDiff
				}
				tmp[index] -= minDiff

				minDiff -= diffSum

				// Spread the remaining crust equally among all lower
				// neighbours and the cell itself.
				var shares float32 = 1
				if wCrust > 0 {
					shares++
				}
				if eCrust > 0 {
					shares++
				}
				if nCrust > 0 {
					shares++
				}
				if sCrust > 0 {
					shares++
				}
				minDiff /= shares

				if wCrust > 0 {
					tmp[w] += minDiff
				}
				if eCrust > 0 {
					tmp[e] += minDiff
				}
				if nCrust > 0 {
					tmp[n] += minDiff
				}
				if sCrust > 0 {
					tmp[s] += minDiff
				}
				tmp[index] += minDiff
			} else {
				unit := minDiff / diffSum

				// Remove the excess above the tallest lower neighbour and
				// spread it proportionally to the slopes.
				tmp[index] -= minDiff
				if wCrust > 0 {
					tmp[w] += unit * (wDiff - minDiff)
				}
				if eCrust > 0 {
					tmp[e] += unit * (eDiff - minDiff)
				}
				if nCrust > 0 {
					tmp[n] += unit * (nDiff - minDiff)
				}
				if sCrust > 0 {
					tmp[s] += unit * (sDiff - minDiff)
				}
			}
		}
	}

	p.height.reset(width, height, tmp)
	p.mass = mb.Build()
}
